// Package errorutil contains small helpers for error management.
//
// In general, errors are infrequent, so it is ok to spend a little
// effort combining and contextualizing them when they occur.
package errorutil

import "fmt"

// Multi is a slice of errors, which acts as a single error
type Multi []error

// String wraps a string as an error
type String string

func (e String) Error() string {
	return string(e)
}

func (e Multi) Error() string {
	return fmt.Sprintf("%v errors: %v", len(e), []error(e))
}

func (e Multi) HasError() (b bool) {
	for i := range e {
		if e[i] != nil {
			b = true
			break
		}
	}
	return
}

// NonNil returns the subset of this Multi which are non nil,
// flattening any nested Multi.
func (e Multi) NonNil() Multi {
	var merrs Multi
	for _, err := range e {
		if err == nil {
			continue
		}
		switch x := err.(type) {
		case Multi:
			merrs = append(merrs, x.NonNil()...)
		default:
			merrs = append(merrs, err)
		}
	}
	return merrs
}

// NonNilError collapses a Multi to nil, a single error, or itself.
func (e Multi) NonNilError() error {
	merrs := e.NonNil()
	switch len(merrs) {
	case 0:
		return nil
	case 1:
		return merrs[0]
	default:
		return merrs
	}
}

func (e Multi) First() error {
	if len(e) == 0 {
		return nil
	}
	return e[0]
}
