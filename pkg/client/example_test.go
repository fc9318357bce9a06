package client_test

import (
	"context"
	"fmt"
	"log"

	"github.com/pratik-mahalle/freelancehub/pkg/client"
)

// Example demonstrates basic usage of the client
func Example() {
	c := client.NewClient(client.Config{
		BaseURL: "http://localhost:8080",
		Token:   "access-token",
	})

	ctx := context.Background()

	ent, err := c.Entitlement(ctx)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Plan: %s, %d trial days left\n", ent.Plan, ent.DaysRemaining)

	insights, err := c.Insights(ctx)
	if err != nil {
		log.Fatal(err)
	}
	for _, in := range insights {
		fmt.Printf("%s: %s\n", in.Title, in.Value)
	}
}

// ExampleClientService_Create demonstrates creating a client and handling a plan limit
func ExampleClientService_Create() {
	c := client.NewClient(client.Config{BaseURL: "http://localhost:8080", Token: "access-token"})

	created, err := c.Clients().Create(context.Background(), client.CreateClientRequest{
		Name:  "Acme",
		Email: "ops@acme.test",
	})
	if apiErr, ok := err.(*client.APIError); ok && apiErr.IsPlanLimit() {
		fmt.Println("Upgrade to add more clients")
		return
	}
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(created.ID)
}
