package review

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// TokenPrefix is the component key reviewer buttons are routed by.
const TokenPrefix = "review"

// ErrMalformedToken is returned when a button payload is not a reviewer action.
var ErrMalformedToken = errors.New("malformed reviewer action token")

// Kind is a reviewer decision.
type Kind string

const (
	KindAccept  Kind = "accept"
	KindRework  Kind = "rework"
	KindCertify Kind = "certify"
)

func (k Kind) valid() bool {
	switch k {
	case KindAccept, KindRework, KindCertify:
		return true
	}
	return false
}

// Action is a self-describing reviewer action: it names the submitter and
// submission directly, nothing is looked up.
type Action struct {
	Kind         Kind
	SubmitterID  string
	SubmissionID int64
}

// Encode renders the action as "review:<kind>:<submitter>:<submission>".
func (a Action) Encode() string {
	return fmt.Sprintf("%s:%s:%s:%d", TokenPrefix, a.Kind, a.SubmitterID, a.SubmissionID)
}

// IsToken reports whether s looks like a reviewer action token.
func IsToken(s string) bool {
	return strings.HasPrefix(s, TokenPrefix+":")
}

// ParseAction decodes a token produced by Encode. The submission id is taken
// from the last field so submitter ids may contain the separator.
func ParseAction(s string) (Action, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) != 3 || parts[0] != TokenPrefix {
		return Action{}, fmt.Errorf("%w: %q", ErrMalformedToken, s)
	}

	kind := Kind(parts[1])
	if !kind.valid() {
		return Action{}, fmt.Errorf("%w: unknown kind %q", ErrMalformedToken, parts[1])
	}

	rest := parts[2]
	idx := strings.LastIndex(rest, ":")
	if idx <= 0 {
		return Action{}, fmt.Errorf("%w: %q", ErrMalformedToken, s)
	}
	submissionID, err := strconv.ParseInt(rest[idx+1:], 10, 64)
	if err != nil {
		return Action{}, fmt.Errorf("%w: submission id: %v", ErrMalformedToken, err)
	}

	return Action{Kind: kind, SubmitterID: rest[:idx], SubmissionID: submissionID}, nil
}
