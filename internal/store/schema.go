package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

var (
	// spinOutcomesColumns holds the columns for the "spin_outcomes" table.
	spinOutcomesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "session_id", Type: field.TypeString, Unique: true},
		{Name: "project_id", Type: field.TypeString},
		{Name: "project_name", Type: field.TypeString, Default: ""},
		{Name: "candidate_id", Type: field.TypeString, Default: ""},
		{Name: "candidate_name", Type: field.TypeString, Default: ""},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_kind", Type: field.TypeString, Default: ""},
		{Name: "error_message", Type: field.TypeString, Default: ""},
		{Name: "latency_ms", Type: field.TypeInt64},
		{Name: "resolved_at", Type: field.TypeInt64},
	}
	// spinOutcomesTable holds the schema information for the "spin_outcomes" table.
	spinOutcomesTable = &schema.Table{
		Name:       "spin_outcomes",
		Columns:    spinOutcomesColumns,
		PrimaryKey: []*schema.Column{spinOutcomesColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "spinoutcome_project_id",
				Unique:  false,
				Columns: []*schema.Column{spinOutcomesColumns[2]},
			},
			{
				Name:    "spinoutcome_resolved_at",
				Unique:  false,
				Columns: []*schema.Column{spinOutcomesColumns[10]},
			},
		},
	}
	// tables holds all the tables in the schema.
	tables = []*schema.Table{
		spinOutcomesTable,
	}
)

// migrate creates or updates the tables the store needs.
func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("new migrate: %w", err)
	}
	return m.Create(ctx, tables...)
}
