package repositories

import (
	"fmt"
	"strings"

	"github.com/streamhive/backend/internal/pipeline"
)

// The relational executor realizes a stage plan in two parts: match, search
// and sort stages compile generically into WHERE/ORDER BY clauses through a
// per-collection column whitelist, while hydrate, derive and project stages
// are satisfied by the fixed join and select list of each query. Unknown
// fields are rejected before any SQL is sent.

type columnMap map[string]string

var (
	videoColumns = columnMap{
		pipeline.FieldID:          "v.id",
		pipeline.FieldOwner:       "v.owner_id",
		pipeline.FieldTitle:       "v.title",
		pipeline.FieldDescription: "v.description",
		pipeline.FieldCreatedAt:   "v.created_at",
		pipeline.FieldViews:       "v.views",
		pipeline.FieldDuration:    "v.duration",
	}

	commentColumns = columnMap{
		pipeline.FieldID:        "c.id",
		pipeline.FieldVideo:     "c.video_id",
		pipeline.FieldOwner:     "c.owner_id",
		pipeline.FieldCreatedAt: "c.created_at",
	}

	postColumns = columnMap{
		pipeline.FieldID:        "p.id",
		pipeline.FieldOwner:     "p.owner_id",
		pipeline.FieldCreatedAt: "p.created_at",
	}

	likeColumns = columnMap{
		pipeline.FieldOwner:     "l.owner_id",
		pipeline.FieldCreatedAt: "l.created_at",
	}

	subscriptionColumns = columnMap{
		pipeline.FieldChannel:    "s.channel_id",
		pipeline.FieldSubscriber: "s.subscriber_id",
		pipeline.FieldCreatedAt:  "s.created_at",
	}

	playlistColumns = columnMap{
		pipeline.FieldID:        "p.id",
		pipeline.FieldOwner:     "p.owner_id",
		pipeline.FieldCreatedAt: "p.created_at",
	}
)

// sqlClauses is the compiled filter/order portion of a stage plan.
type sqlClauses struct {
	conditions []string
	orderBy    string
	args       []any
}

func compileStages(stages []pipeline.Stage, cols columnMap) (sqlClauses, error) {
	if err := pipeline.Check(stages); err != nil {
		return sqlClauses{}, err
	}

	var c sqlClauses
	for _, s := range stages {
		switch st := s.(type) {
		case pipeline.Match:
			col, ok := cols[st.Field]
			if !ok {
				return sqlClauses{}, fmt.Errorf("pipeline match on unknown field %q", st.Field)
			}
			c.args = append(c.args, st.Value)
			c.conditions = append(c.conditions, fmt.Sprintf("%s = $%d", col, len(c.args)))
		case pipeline.Search:
			if st.Term == "" || len(st.Fields) == 0 {
				continue
			}
			c.args = append(c.args, st.Term)
			placeholder := len(c.args)
			parts := make([]string, 0, len(st.Fields))
			for _, field := range st.Fields {
				col, ok := cols[field]
				if !ok {
					return sqlClauses{}, fmt.Errorf("pipeline search on unknown field %q", field)
				}
				parts = append(parts, fmt.Sprintf("%s ILIKE '%%' || $%d || '%%'", col, placeholder))
			}
			c.conditions = append(c.conditions, "("+strings.Join(parts, " OR ")+")")
		case pipeline.Sort:
			col, ok := cols[st.Key]
			if !ok {
				return sqlClauses{}, fmt.Errorf("pipeline sort on unknown key %q", st.Key)
			}
			direction := "ASC"
			if st.Descending {
				direction = "DESC"
			}
			c.orderBy = fmt.Sprintf("%s %s", col, direction)
		case pipeline.Hydrate, pipeline.Derive, pipeline.Project:
			// Structural stages; the query text already joins and projects
			// what these declare.
		}
	}

	return c, nil
}

// whereSQL renders the WHERE clause, empty when there are no conditions.
func (c sqlClauses) whereSQL() string {
	if len(c.conditions) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(c.conditions, " AND ")
}

// orderSQL renders the ORDER BY clause, empty when no sort was requested.
func (c sqlClauses) orderSQL() string {
	if c.orderBy == "" {
		return ""
	}
	return "ORDER BY " + c.orderBy
}

// windowSQL renders LIMIT/OFFSET bound to the next two placeholders and
// appends the window values to the argument list.
func (c *sqlClauses) windowSQL(limit, offset int) string {
	c.args = append(c.args, limit, offset)
	return fmt.Sprintf("LIMIT $%d OFFSET $%d", len(c.args)-1, len(c.args))
}
