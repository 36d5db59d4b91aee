package util

func StringPtr(s string) *string {
	return &s
}
