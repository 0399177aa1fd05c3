package models

type ProcessStatus int

const (
	StatusSuccess ProcessStatus = iota
	StatusFailure
	StatusSkipped
)

func (s ProcessStatus) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusSkipped:
		return "skipped"
	default:
		return "failure"
	}
}
