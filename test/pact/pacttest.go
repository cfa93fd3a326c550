//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "pizzeria-console-api"
	ConsumerName = "staff-console"

	StateOrdersBaseline = "open orders baseline"
	StateOrderExists    = "open order o-101 exists"
	StateOrderMissing   = "no order o-404"
	StateMenuItemExists = "menu item p-1 exists"
	StateMenuItemAbsent = "no menu item p-404"
	StateReasonsSaved   = "rejection reasons are saved"
)

const (
	ExistingOrderID = "o-101"
	MissingOrderID  = "o-404"

	ExistingItemID = "p-1"
	MissingItemID  = "p-404"

	ExampleReason = "закончилось тесто"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the staff console consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleOrderPayload is the open order seeded for order interactions.
func ExampleOrderPayload() map[string]any {
	return map[string]any{
		"id":             ExistingOrderID,
		"state":          "new",
		"isCompleted":    false,
		"isConfirmed":    false,
		"sum":            "600",
		"consumerName":   "Anna",
		"consumerEmail":  "anna@example.com",
		"consumerPhone":  "+79990001122",
		"pizzaList":      []string{"Salami", "Salami"},
		"additionalInfo": "",
		"time":           "18-30 08-03-2024",
		"hour":           "18-30",
		"day":            "08-03-2024",
	}
}

// ExampleItemPayload is the menu item seeded for menu interactions.
func ExampleItemPayload() map[string]any {
	return map[string]any{
		"id":          ExistingItemID,
		"name":        "Salami",
		"description": "tomato, mozzarella, salami",
		"price":       "300",
		"isAvailable": true,
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
