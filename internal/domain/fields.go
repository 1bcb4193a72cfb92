//go:generate go run github.com/abice/go-enum@v0.5.6 --marshal --nocase

package domain

import (
	"fmt"
)

// Visibility controls whether a field is part of a list item when the client
// does not ask for specific fields.
// ENUM(always, yes, no)
type Visibility int

type FieldDescriptor struct {
	Name           string     `json:"name"`
	TranslationKey string     `json:"translation"`
	Visibility     Visibility `json:"visibility"`
	Sortable       bool       `json:"sortable"`
	Searchable     bool       `json:"searchable"`
	Type           string     `json:"type"`
}

type FieldDescriptors []FieldDescriptor

func (descriptors FieldDescriptors) Validate() error {
	seen := make(map[string]bool, len(descriptors))
	for _, descriptor := range descriptors {
		if descriptor.Name == "" {
			return fmt.Errorf("%w: field descriptor without name", ErrInvalidArgument)
		}
		if seen[descriptor.Name] {
			return fmt.Errorf("%w: duplicate field descriptor %q", ErrInvalidArgument, descriptor.Name)
		}
		seen[descriptor.Name] = true
	}
	return nil
}

func (descriptors FieldDescriptors) Lookup(name string) (FieldDescriptor, bool) {
	for _, descriptor := range descriptors {
		if descriptor.Name == name {
			return descriptor, true
		}
	}
	return FieldDescriptor{}, false
}

func (descriptors FieldDescriptors) Sortable(name string) bool {
	descriptor, ok := descriptors.Lookup(name)
	return ok && descriptor.Sortable
}

func (descriptors FieldDescriptors) Searchable(name string) bool {
	descriptor, ok := descriptors.Lookup(name)
	return ok && descriptor.Searchable
}

func (descriptors FieldDescriptors) Names() []string {
	names := make([]string, 0, len(descriptors))
	for _, descriptor := range descriptors {
		names = append(names, descriptor.Name)
	}
	return names
}

func (descriptor FieldDescriptor) exposed(selection Set[string]) bool {
	switch descriptor.Visibility {
	case VisibilityAlways:
		return true
	case VisibilityYes:
		if len(selection) == 0 {
			return true
		}
	}
	return selection.Contains(descriptor.Name)
}

// ExposeFields returns the subset of rec a client gets to see. Entries without a
// descriptor are never exposed.
func ExposeFields(rec Record, descriptors FieldDescriptors, selection Set[string]) Record {
	exposed := make(map[string]any, len(descriptors))
	for _, descriptor := range descriptors {
		value, ok := rec.Entries[descriptor.Name]
		if !ok || !descriptor.exposed(selection) {
			continue
		}
		exposed[descriptor.Name] = value
	}
	out := Record{Entries: exposed}
	out.normalize()
	return out
}

func ExposeAll(records []Record, descriptors FieldDescriptors, selection Set[string]) []Record {
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		out = append(out, ExposeFields(rec, descriptors, selection))
	}
	return out
}
