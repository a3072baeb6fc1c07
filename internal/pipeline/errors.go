package pipeline

import "fmt"

// InputError indicates invalid or unusable evaluation input.
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("input error: %s", e.Message)
}

// NoJobDescriptionError is returned when no document in the input set
// classifies as a job description.
type NoJobDescriptionError struct {
	Dir string
}

func (e *NoJobDescriptionError) Error() string {
	if e.Dir != "" {
		return fmt.Sprintf("no job description found in %s", e.Dir)
	}
	return "no job description found in input documents"
}

// EmptyRequirementsError is returned when a job description yields no
// structured requirements after filtering.
type EmptyRequirementsError struct {
	JDName string
}

func (e *EmptyRequirementsError) Error() string {
	return fmt.Sprintf("job description %q produced no requirements after filtering", e.JDName)
}
