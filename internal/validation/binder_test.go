package validation

import (
	"errors"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct {
	Title string
	Count int
	Link  *url.URL
}

func parseInt(raw string) (any, error) {
	return strconv.Atoi(raw)
}

func widgetSchema() Schema[*widget] {
	return Schema[*widget]{
		Fields: []Field{
			{Name: "title", Required: true},
			{Name: "count", Default: 1, Parse: parseInt},
			{Name: "link", Parse: ParseAbsoluteURL},
		},
		Build: func(values Values) *widget {
			r, _ := values.Lookup("count")
			return &widget{
				Title: values.String("title"),
				Count: r.Value.(int),
				Link:  values.URL("link"),
			}
		},
	}
}

func TestSchemaBind(t *testing.T) {
	tests := []struct {
		name      string
		form      url.Values
		want      *widget
		wantErrs  []string
		wantCount int
	}{
		{
			name:      "all fields present",
			form:      url.Values{"title": {"Gear"}, "count": {"3"}, "link": {"https://example.com"}},
			wantCount: 3,
		},
		{
			name:      "optional field defaulted",
			form:      url.Values{"title": {"Gear"}},
			wantCount: 1,
		},
		{
			name:      "unconvertible optional value falls back to default",
			form:      url.Values{"title": {"Gear"}, "count": {"many"}, "link": {"not a url"}},
			wantCount: 1,
		},
		{
			name:     "required field missing",
			form:     url.Values{"count": {"3"}},
			wantErrs: []string{"Form value missing for title"},
		},
		{
			name:     "blank required field is missing",
			form:     url.Values{"title": {"   "}},
			wantErrs: []string{"Form value missing for title"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errs := widgetSchema().Bind(tt.form)

			if tt.wantErrs != nil {
				assert.Nil(t, got)
				assert.Equal(t, tt.wantErrs, errs)
				return
			}

			require.Empty(t, errs)
			require.NotNil(t, got)
			assert.Equal(t, tt.form.Get("title"), got.Title)
			assert.Equal(t, tt.wantCount, got.Count)
		})
	}
}

func TestSchemaBind_RequiredFieldWithFailingParser(t *testing.T) {
	schema := Schema[string]{
		Fields: []Field{{
			Name:     "when",
			Required: true,
			Parse:    func(string) (any, error) { return nil, errors.New("bad") },
		}},
		Build: func(values Values) string { return "built" },
	}

	got, errs := schema.Bind(url.Values{"when": {"yesterday"}})

	assert.Equal(t, "", got)
	assert.Equal(t, []string{"Form value missing for when"}, errs)
}

func TestSchemaBind_CollectsAllErrors(t *testing.T) {
	built := false
	schema := Schema[bool]{
		Fields: []Field{
			{Name: "a", Required: true},
			{Name: "b", Required: true},
			{Name: "email"},
		},
		Rules: []Rule{EmailRule("email")},
		Build: func(values Values) bool {
			built = true
			return true
		},
	}

	got, errs := schema.Bind(url.Values{"email": {"nope"}})

	assert.False(t, got)
	assert.False(t, built, "Build must not run when errors were collected")
	assert.Equal(t, []string{
		"Form value missing for a",
		"Form value missing for b",
		"'nope' is not a valid email address",
	}, errs)
}

func TestSchemaResolve_States(t *testing.T) {
	values := widgetSchema().Resolve(url.Values{"title": {"Gear"}, "link": {"relative/path"}})

	assert.Equal(t, StatePresent, values.State("title"))
	assert.Equal(t, StateDefaulted, values.State("count"))
	assert.Equal(t, StateDefaulted, values.State("link"))
	assert.Nil(t, values.URL("link"))

	names := make([]string, 0, 3)
	for _, r := range values.All() {
		names = append(names, r.Field)
	}
	assert.Equal(t, []string{"title", "count", "link"}, names)

	_, ok := values.Lookup("unknown")
	assert.False(t, ok)
	assert.Equal(t, StateMissing, values.State("unknown"))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "missing", StateMissing.String())
	assert.Equal(t, "present", StatePresent.String())
	assert.Equal(t, "defaulted", StateDefaulted.String())
}
