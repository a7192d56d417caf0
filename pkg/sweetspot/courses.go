// Copyright (c) 2024 Adam Wyatt
//
// This software is licensed under the MIT License.
// See the LICENSE file in the root of the repository for details.

package sweetspot

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sahilm/fuzzy"
)

// Course is a golf course known to Sweetspot by its UUID.
type Course struct {
	Name string `yaml:"name"`
	ID   string `yaml:"id"`
}

// DefaultCourses returns the built-in course list.
func DefaultCourses() []Course {
	return []Course{
		{Name: "brållsta 18 hål", ID: "292e2543-f661-403f-b1d6-a5086d251061"},
		{Name: "bodaholm", ID: "ac165789-77f6-43c5-ae15-907ae3c4b814"},
		{Name: "gripsholm", ID: "9cec9190-3cf1-4177-90a6-c8b1c874a552"},
		{Name: "international", ID: "2ee26a65-028d-46e0-809d-635bf3c06a5a"},
		{Name: "kings course", ID: "c006a958-4c27-4a58-9442-627a7aebc843"},
		{Name: "queens", ID: "583bf680-75c3-4281-b78d-be5ebbcdac1f"},
		{Name: "kyssinge", ID: "f10b066a-205b-4690-af58-83c43cff55c1"},
		{Name: "lindö dal", ID: "e02768fc-caff-49b6-a86d-237179cf5ca8"},
		{Name: "lindö park", ID: "15a56a35-ec3f-4067-935f-45b38530c52e"},
		{Name: "lindö äng", ID: "6ec41746-b529-46bc-ac81-514095105d54"},
		{Name: "riksten", ID: "19ceb886-66ed-4489-9ddd-6e86642a22be"},
		{Name: "stannum", ID: "c4d2c938-43d7-4b07-9ddc-c679c769d28c"},
		{Name: "waxholm", ID: "410fdd67-a108-4b3f-8058-1ff66fc061c2"},
	}
}

// CourseTable resolves user input to a course. It is never modified after
// construction.
type CourseTable struct {
	courses []Course
}

// NewCourseTable copies courses into a new table. Order is kept and decides
// which course wins a prefix match.
func NewCourseTable(courses []Course) *CourseTable {
	return &CourseTable{courses: append([]Course(nil), courses...)}
}

// Courses returns a copy of the table.
func (t *CourseTable) Courses() []Course {
	return append([]Course(nil), t.courses...)
}

// Names lists the course names in table order.
func (t *CourseTable) Names() []string {
	names := make([]string, len(t.courses))
	for i, c := range t.courses {
		names[i] = c.Name
	}
	return names
}

// Resolve accepts a course UUID or a name. Names match case-insensitively,
// first exactly, then when either side is a prefix of the other.
func (t *CourseTable) Resolve(nameOrID string) (Course, error) {
	val := strings.TrimSpace(nameOrID)

	if _, err := uuid.Parse(val); err == nil && val != "" {
		for _, c := range t.courses {
			if strings.EqualFold(c.ID, val) {
				return c, nil
			}
		}
		return Course{Name: val, ID: val}, nil
	}

	key := strings.ToLower(val)
	if key != "" {
		for _, c := range t.courses {
			if strings.ToLower(c.Name) == key {
				return c, nil
			}
		}
		for _, c := range t.courses {
			name := strings.ToLower(c.Name)
			if strings.HasPrefix(name, key) || strings.HasPrefix(key, name) {
				return c, nil
			}
		}
	}

	return Course{}, &UnknownCourseError{
		Input:       nameOrID,
		Known:       t.Names(),
		Suggestions: t.suggest(key),
	}
}

func (t *CourseTable) suggest(key string) []string {
	if key == "" {
		return nil
	}
	names := t.Names()
	matches := fuzzy.Find(key, names)
	var out []string
	for i, m := range matches {
		if i == 3 {
			break
		}
		out = append(out, m.Str)
	}
	return out
}

// UnknownCourseError is returned when no course matches the input.
type UnknownCourseError struct {
	Input       string
	Known       []string
	Suggestions []string
}

func (e *UnknownCourseError) Error() string {
	msg := fmt.Sprintf("unknown course: %s. Known: %s", e.Input, strings.Join(e.Known, ", "))
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}
