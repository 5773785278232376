// Package main demonstrates statediff change tracking on a plain struct
// and on a JSON document mutated by path.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/statediff"
)

// Address is a nested value type tracked field-by-field.
type Address struct {
	Street string
	City   string
	Zip    string
}

// Customer is the demo owner.
type Customer struct {
	Name    string
	Address Address
	Tags    []string
}

// Document wraps a parsed JSON document so it can be tracked as a property.
type Document struct {
	Data map[string]any
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	tracker := statediff.NewTracker(statediff.WithLogger(logger))

	customer := &Customer{
		Name:    "Ada",
		Address: Address{Street: "123 Main St", City: "Anytown", Zip: "12345"},
		Tags:    []string{"customer", "active"},
	}
	statediff.StartTrack(tracker, customer, "Address")
	statediff.StartTrack(tracker, customer, "Tags")

	customer.Address.City = "New City"
	customer.Tags = append(customer.Tags, "new-tag")

	fmt.Println("struct changes:")
	for _, c := range tracker.PeekChanges() {
		fmt.Printf("  %s\n", c)
	}

	tracker.UpdateSnapshots()

	// Track a JSON document; mutations are applied by path with sjson
	// and the re-parsed document swapped in behind the same owner.
	raw := `{"profile":{"name":"Ada","visits":3},"settings":{"theme":"dark","alerts":["email"]}}`
	doc := &Document{Data: gjson.Parse(raw).Value().(map[string]any)}
	statediff.StartTrack(tracker, doc, "Data", statediff.WithMaxDepth(2))

	raw, _ = sjson.Set(raw, "profile.visits", 4)
	raw, _ = sjson.Set(raw, "settings.theme", "light")
	doc.Data = gjson.Parse(raw).Value().(map[string]any)

	fmt.Println("document changes:")
	for _, c := range tracker.PeekChanges() {
		fmt.Printf("  %s\n", c)
	}

	fmt.Println("summary:", tracker.PeekChangeSet().Summary())
}
