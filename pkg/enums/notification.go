package enums

import "fmt"

// NotificationSeverity controls how the UI renders a notification.
type NotificationSeverity string

const (
	NotificationSeveritySuccess NotificationSeverity = "success"
	NotificationSeverityInfo    NotificationSeverity = "info"
	NotificationSeverityWarning NotificationSeverity = "warning"
	NotificationSeverityError   NotificationSeverity = "error"
)

var validNotificationSeverities = []NotificationSeverity{
	NotificationSeveritySuccess,
	NotificationSeverityInfo,
	NotificationSeverityWarning,
	NotificationSeverityError,
}

// String implements fmt.Stringer.
func (n NotificationSeverity) String() string {
	return string(n)
}

// IsValid reports whether the severity is recognized.
func (n NotificationSeverity) IsValid() bool {
	for _, candidate := range validNotificationSeverities {
		if candidate == n {
			return true
		}
	}
	return false
}

// ParseNotificationSeverity converts a raw string into a NotificationSeverity.
func ParseNotificationSeverity(value string) (NotificationSeverity, error) {
	for _, candidate := range validNotificationSeverities {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid notification severity %q", value)
}
