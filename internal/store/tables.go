package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// eventColumns prefixes every event table with the shared id, global
// sequence and UTC timestamp columns.
func eventColumns(cols ...*schema.Column) []*schema.Column {
	base := []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
	}
	return append(base, cols...)
}

func eventTable(name string, cols []*schema.Column, indexed ...int) *schema.Table {
	t := &schema.Table{
		Name:       name,
		Columns:    cols,
		PrimaryKey: []*schema.Column{cols[0]},
		Indexes: []*schema.Index{
			{Name: name + "_timestamp", Columns: []*schema.Column{cols[2]}},
		},
	}
	for _, i := range indexed {
		t.Indexes = append(t.Indexes, &schema.Index{
			Name:    name + "_" + cols[i].Name,
			Columns: []*schema.Column{cols[i]},
		})
	}
	return t
}

var (
	sessionEventsColumns = eventColumns(
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "action", Type: field.TypeString},
		&schema.Column{Name: "difficulty", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "problems_served", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "correct_answers", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "duration_secs", Type: field.TypeInt, Default: 0},
	)
	sessionEventsTable = eventTable("session_events", sessionEventsColumns, 3)

	attemptEventsColumns = eventColumns(
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "operand_a", Type: field.TypeInt64},
		&schema.Column{Name: "operand_b", Type: field.TypeInt64},
		&schema.Column{Name: "strategy", Type: field.TypeString},
		&schema.Column{Name: "answer", Type: field.TypeString},
		&schema.Column{Name: "correct", Type: field.TypeBool},
		&schema.Column{Name: "skipped", Type: field.TypeBool, Default: false},
		&schema.Column{Name: "hints_revealed", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "time_ms", Type: field.TypeInt64, Default: 0},
	)
	attemptEventsTable = eventTable("attempt_events", attemptEventsColumns, 3, 6)

	hintEventsColumns = eventColumns(
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "operand_a", Type: field.TypeInt64},
		&schema.Column{Name: "operand_b", Type: field.TypeInt64},
		&schema.Column{Name: "strategy", Type: field.TypeString},
		&schema.Column{Name: "level", Type: field.TypeString},
	)
	hintEventsTable = eventTable("hint_events", hintEventsColumns, 3)

	llmRequestEventsColumns = eventColumns(
		&schema.Column{Name: "provider", Type: field.TypeString},
		&schema.Column{Name: "model", Type: field.TypeString},
		&schema.Column{Name: "purpose", Type: field.TypeString},
		&schema.Column{Name: "input_tokens", Type: field.TypeInt},
		&schema.Column{Name: "output_tokens", Type: field.TypeInt},
		&schema.Column{Name: "latency_ms", Type: field.TypeInt64},
		&schema.Column{Name: "success", Type: field.TypeBool},
		&schema.Column{Name: "error_message", Type: field.TypeString, Nullable: true},
	)
	llmRequestEventsTable = eventTable("llm_request_events", llmRequestEventsColumns)

	tables = []*schema.Table{
		sessionEventsTable,
		attemptEventsTable,
		hintEventsTable,
		llmRequestEventsTable,
	}
)
