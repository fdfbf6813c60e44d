package check

import "fmt"

// Absent marks the result absent with a detail message.
func (r *Result) Absent(detail string, err error) Result {
	r.Status = StatusAbsent
	r.Details = append(r.Details, detail)
	r.Err = err
	return *r
}

// Absentf marks the result absent with a formatted detail message.
func (r *Result) Absentf(format string, args ...interface{}) Result {
	return r.Absent(fmt.Sprintf(format, args...), fmt.Errorf(format, args...))
}

// AddDetail appends one line to the result's detail block.
func (r *Result) AddDetail(detail string) *Result {
	r.Details = append(r.Details, detail)
	return r
}

// AddDetailf appends a formatted line to the detail block.
func (r *Result) AddDetailf(format string, args ...interface{}) *Result {
	return r.AddDetail(fmt.Sprintf(format, args...))
}
