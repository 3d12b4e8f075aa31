package analytics

import (
	"fmt"
	"strings"
)

// ViewPolicy decides which read paths count as profile views.
type ViewPolicy string

const (
	// ViewPolicyAllReads counts single reads and every item of a list read.
	ViewPolicyAllReads ViewPolicy = "all_reads"
	// ViewPolicySingleReads counts only single-business reads.
	ViewPolicySingleReads ViewPolicy = "single_reads"
	// ViewPolicyNone disables view counting.
	ViewPolicyNone ViewPolicy = "none"
)

// ViewSource identifies the read path that produced a view.
type ViewSource string

const (
	SourceSingle     ViewSource = "single"
	SourceOwnerList  ViewSource = "owner_list"
	SourcePublicList ViewSource = "public_list"
)

// ParseViewPolicy accepts the configured policy name. Empty means all_reads.
func ParseViewPolicy(s string) (ViewPolicy, error) {
	switch p := ViewPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return ViewPolicyAllReads, nil
	case ViewPolicyAllReads, ViewPolicySingleReads, ViewPolicyNone:
		return p, nil
	}
	return "", fmt.Errorf("unknown analytics view policy %q", s)
}

// Counts reports whether a read from source records a view under p.
func (p ViewPolicy) Counts(source ViewSource) bool {
	switch p {
	case ViewPolicyAllReads:
		return true
	case ViewPolicySingleReads:
		return source == SourceSingle
	}
	return false
}
