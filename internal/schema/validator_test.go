package schema

import "testing"

func TestValidatePlanAccepts(t *testing.T) {
	v, err := NewValidator()
	if err != nil {
		t.Fatalf("compile schema: %v", err)
	}

	doc := []byte(`apiVersion: entrygate.dev/v1
kind: StartupPlan
metadata:
  name: web
wait:
  - host: db
    port: 5432
    protocol: tcp
    interval: 2s
    timeout: 1m
    attempts: 30
steps:
  - name: migrate
    run: python manage.py migrate
    onFailure: abort
command: ["serve", "--port", "8000"]
`)
	if err := v.ValidatePlan(doc); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestValidatePlanMinimal(t *testing.T) {
	v, err := NewValidator()
	if err != nil {
		t.Fatalf("compile schema: %v", err)
	}

	doc := []byte("apiVersion: entrygate.dev/v1\nkind: StartupPlan\n")
	if err := v.ValidatePlan(doc); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestValidatePlanRejects(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"unknown top-level field", "apiVersion: entrygate.dev/v1\nkind: StartupPlan\nextra: true\n"},
		{"missing kind", "apiVersion: entrygate.dev/v1\n"},
		{"wrong apiVersion", "apiVersion: v2\nkind: StartupPlan\n"},
		{"target without port", "apiVersion: entrygate.dev/v1\nkind: StartupPlan\nwait:\n  - host: db\n"},
		{"port as string", "apiVersion: entrygate.dev/v1\nkind: StartupPlan\nwait:\n  - host: db\n    port: \"5432\"\n"},
		{"empty step name", "apiVersion: entrygate.dev/v1\nkind: StartupPlan\nsteps:\n  - name: \"\"\n    run: \"true\"\n"},
	}

	v, err := NewValidator()
	if err != nil {
		t.Fatalf("compile schema: %v", err)
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			if err := v.ValidatePlan([]byte(tt.doc)); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
