// Package permissions maps roles to the closed set of privileged
// capabilities. Services check a capability once per operation instead of
// branching on roles inline.
package permissions

import "github.com/0xSujith18/Talkit/internal/models"

type Permission string

const (
	UpdateReportStatus Permission = "update_report_status"
	ViewAnalytics      Permission = "view_analytics"
	ListAllReports     Permission = "list_all_reports"
	ReadRestricted     Permission = "read_restricted_reports"
	UpdatePostStatus   Permission = "update_post_status"
	ReviewModeration   Permission = "review_moderation"
	ReviewVerification Permission = "review_verification"
)

var grants = map[string]map[Permission]bool{
	models.RoleCitizen: {},
	models.RoleAuthority: {
		UpdateReportStatus: true,
		ViewAnalytics:      true,
		ListAllReports:     true,
		ReadRestricted:     true,
		UpdatePostStatus:   true,
	},
	models.RoleAdmin: {
		UpdateReportStatus: true,
		ViewAnalytics:      true,
		ListAllReports:     true,
		ReadRestricted:     true,
		UpdatePostStatus:   true,
		ReviewModeration:   true,
		ReviewVerification: true,
	},
}

// Allowed reports whether the role holds the given capability.
// Unknown roles hold nothing.
func Allowed(role string, perm Permission) bool {
	return grants[role][perm]
}
