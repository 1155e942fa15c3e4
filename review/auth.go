package review

import (
	"errors"
	"strings"
)

// ErrUnauthorized is returned when someone other than the reviewer invokes a
// reviewer action.
var ErrUnauthorized = errors.New("not authorized to review")

// CheckAuth 检查用户是否为指定的审核员
func CheckAuth(reviewerID, userID string) bool {
	reviewerID = strings.TrimSpace(reviewerID)
	if reviewerID == "" || reviewerID == "0" {
		return false
	}
	return userID == reviewerID
}
