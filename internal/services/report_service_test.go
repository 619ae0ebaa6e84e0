package services

import (
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/0xSujith18/Talkit/internal/apperrors"
	"github.com/0xSujith18/Talkit/internal/models"
)

func TestGenerateReportID(t *testing.T) {
	format := regexp.MustCompile(`^TLK-[0-9A-Z]+-[0-9A-Z]{4}$`)
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		id := generateReportID()
		if !format.MatchString(id) {
			t.Fatalf("generateReportID() = %q, want match for %s", id, format)
		}
		if seen[id] {
			t.Fatalf("generateReportID() produced duplicate %q", id)
		}
		seen[id] = true
	}
}

func TestCreateReport(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*models.CreateReportRequest)
		wantKind apperrors.Kind
	}{
		{
			name:   "valid request",
			mutate: func(r *models.CreateReportRequest) {},
		},
		{
			name:     "missing media",
			mutate:   func(r *models.CreateReportRequest) { r.Media = nil },
			wantKind: apperrors.KindValidation,
		},
		{
			name:     "missing latitude",
			mutate:   func(r *models.CreateReportRequest) { r.Lat = nil },
			wantKind: apperrors.KindValidation,
		},
		{
			name:     "missing longitude",
			mutate:   func(r *models.CreateReportRequest) { r.Lng = nil },
			wantKind: apperrors.KindValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewReportService(newFakeReportRepo(), newFakePostRepo(), newFakeCommentRepo(), &fakeNotifier{})
			req := validReportRequest()
			tt.mutate(req)

			report, err := svc.CreateReport(citizen(1), req)
			if tt.wantKind != "" {
				if err == nil {
					t.Fatalf("CreateReport() error = nil, want kind %s", tt.wantKind)
				}
				if got := apperrors.KindOf(err); got != tt.wantKind {
					t.Fatalf("CreateReport() error kind = %s, want %s", got, tt.wantKind)
				}
				return
			}
			if err != nil {
				t.Fatalf("CreateReport() error = %v", err)
			}
			if report.UserID != 1 {
				t.Errorf("report.UserID = %d, want 1", report.UserID)
			}
			if report.Status != models.StatusPending {
				t.Errorf("report.Status = %q, want %q", report.Status, models.StatusPending)
			}
			if report.Privacy != models.PrivacyPublic {
				t.Errorf("report.Privacy = %q, want %q", report.Privacy, models.PrivacyPublic)
			}
			if !strings.HasPrefix(report.ReportID, "TLK-") {
				t.Errorf("report.ReportID = %q, want TLK- prefix", report.ReportID)
			}
		})
	}
}

func TestCreateReportDefaultsPrivacyOnly(t *testing.T) {
	svc := NewReportService(newFakeReportRepo(), newFakePostRepo(), newFakeCommentRepo(), &fakeNotifier{})
	req := validReportRequest()
	req.Privacy = models.PrivacyAnonymous

	report, err := svc.CreateReport(citizen(1), req)
	if err != nil {
		t.Fatalf("CreateReport() error = %v", err)
	}
	if report.Privacy != models.PrivacyAnonymous {
		t.Errorf("report.Privacy = %q, want %q", report.Privacy, models.PrivacyAnonymous)
	}
}

func TestGetReportPrivacyGate(t *testing.T) {
	reportRepo := newFakeReportRepo()
	svc := NewReportService(reportRepo, newFakePostRepo(), newFakeCommentRepo(), &fakeNotifier{})

	public, err := svc.CreateReport(citizen(1), validReportRequest())
	if err != nil {
		t.Fatalf("CreateReport() error = %v", err)
	}
	restrictedReq := validReportRequest()
	restrictedReq.Privacy = models.PrivacyAuthoritiesOnly
	restricted, err := svc.CreateReport(citizen(1), restrictedReq)
	if err != nil {
		t.Fatalf("CreateReport() error = %v", err)
	}

	tests := []struct {
		name     string
		caller   models.Identity
		reportID string
		wantKind apperrors.Kind
	}{
		{name: "public report read by stranger", caller: citizen(2), reportID: public.ReportID},
		{name: "restricted report read by owner", caller: citizen(1), reportID: restricted.ReportID},
		{name: "restricted report read by authority", caller: authority(3), reportID: restricted.ReportID},
		{name: "restricted report read by admin", caller: admin(4), reportID: restricted.ReportID},
		{name: "restricted report read by stranger", caller: citizen(2), reportID: restricted.ReportID, wantKind: apperrors.KindAccessDenied},
		{name: "unknown report", caller: citizen(1), reportID: "TLK-MISSING-0000", wantKind: apperrors.KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.GetReport(tt.caller, tt.reportID)
			if tt.wantKind == "" {
				if err != nil {
					t.Fatalf("GetReport() error = %v", err)
				}
				return
			}
			if apperrors.KindOf(err) != tt.wantKind {
				t.Fatalf("GetReport() error = %v, want kind %s", err, tt.wantKind)
			}
		})
	}
}

func TestListReportsScoping(t *testing.T) {
	reportRepo := newFakeReportRepo()
	svc := NewReportService(reportRepo, newFakePostRepo(), newFakeCommentRepo(), &fakeNotifier{})

	for range [3]struct{}{} {
		if _, err := svc.CreateReport(citizen(1), validReportRequest()); err != nil {
			t.Fatalf("CreateReport() error = %v", err)
		}
	}
	trafficReq := validReportRequest()
	trafficReq.Category = models.CategoryTraffic
	if _, err := svc.CreateReport(citizen(2), trafficReq); err != nil {
		t.Fatalf("CreateReport() error = %v", err)
	}

	tests := []struct {
		name      string
		caller    models.Identity
		category  string
		wantTotal int64
	}{
		{name: "citizen sees only own reports", caller: citizen(1), wantTotal: 3},
		{name: "citizen cannot see another citizen", caller: citizen(3), wantTotal: 0},
		{name: "authority sees all reports", caller: authority(9), wantTotal: 4},
		{name: "authority with category filter", caller: authority(9), category: models.CategoryTraffic, wantTotal: 1},
		{name: "citizen category filter stays scoped", caller: citizen(2), category: models.CategoryTraffic, wantTotal: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reports, total, _, err := svc.ListReports(tt.caller, tt.category, "", 1, 10)
			if err != nil {
				t.Fatalf("ListReports() error = %v", err)
			}
			if total != tt.wantTotal {
				t.Fatalf("ListReports() total = %d, want %d", total, tt.wantTotal)
			}
			if int64(len(reports)) != tt.wantTotal {
				t.Fatalf("ListReports() returned %d reports, want %d", len(reports), tt.wantTotal)
			}
		})
	}
}

func TestUpdateReportStatus(t *testing.T) {
	reportRepo := newFakeReportRepo()
	notifier := &fakeNotifier{}
	svc := NewReportService(reportRepo, newFakePostRepo(), newFakeCommentRepo(), notifier)

	report, err := svc.CreateReport(citizen(1), validReportRequest())
	if err != nil {
		t.Fatalf("CreateReport() error = %v", err)
	}

	if _, err := svc.UpdateStatus(citizen(1), report.ReportID, &models.UpdateReportStatusRequest{Status: models.StatusResolved}); apperrors.KindOf(err) != apperrors.KindAccessDenied {
		t.Fatalf("UpdateStatus() by citizen error = %v, want access_denied", err)
	}

	updated, err := svc.UpdateStatus(authority(5), report.ReportID, &models.UpdateReportStatusRequest{
		Status:      models.StatusInProgress,
		ActionProof: []string{"proof/first"},
	})
	if err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	if updated.Status != models.StatusInProgress {
		t.Errorf("status = %q, want %q", updated.Status, models.StatusInProgress)
	}

	// A second update appends proof instead of replacing it.
	updated, err = svc.UpdateStatus(authority(5), report.ReportID, &models.UpdateReportStatusRequest{
		Status:      models.StatusResolved,
		ActionProof: []string{"proof/second"},
	})
	if err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	if len(updated.ActionProof) != 2 {
		t.Errorf("action proof = %v, want both entries retained", updated.ActionProof)
	}

	statusEvents := notifier.ofType(models.NotificationStatusUpdate)
	if len(statusEvents) != 2 {
		t.Fatalf("status notifications = %d, want 2", len(statusEvents))
	}
	if statusEvents[0].RecipientID != 1 {
		t.Errorf("notification recipient = %d, want report owner 1", statusEvents[0].RecipientID)
	}

	if _, err := svc.UpdateStatus(authority(5), "TLK-MISSING-0000", &models.UpdateReportStatusRequest{Status: models.StatusResolved}); apperrors.KindOf(err) != apperrors.KindNotFound {
		t.Fatalf("UpdateStatus() on unknown report error = %v, want not_found", err)
	}
}

func TestPublish(t *testing.T) {
	ctx := context.Background()
	reportRepo := newFakeReportRepo()
	postRepo := newFakePostRepo()
	svc := NewReportService(reportRepo, postRepo, newFakeCommentRepo(), &fakeNotifier{})

	report, err := svc.CreateReport(citizen(1), validReportRequest())
	if err != nil {
		t.Fatalf("CreateReport() error = %v", err)
	}

	if _, _, err := svc.Publish(ctx, citizen(2), report.ReportID); apperrors.KindOf(err) != apperrors.KindAccessDenied {
		t.Fatalf("Publish() by non-owner error = %v, want access_denied", err)
	}

	published, post, err := svc.Publish(ctx, citizen(1), report.ReportID)
	if err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if !published.PublishedToFeed {
		t.Error("report not marked published")
	}
	if published.FeedPostID != post.ID.Hex() {
		t.Errorf("FeedPostID = %q, want %q", published.FeedPostID, post.ID.Hex())
	}
	if !strings.Contains(post.Caption, report.Title) || !strings.Contains(post.Caption, report.Description) {
		t.Errorf("caption %q missing title or description", post.Caption)
	}
	if !strings.Contains(post.Caption, "Report ID: "+report.ReportID) {
		t.Errorf("caption %q missing report id line", post.Caption)
	}
	if post.Category != models.PostCategoryComplaint {
		t.Errorf("post.Category = %q, want %q", post.Category, models.PostCategoryComplaint)
	}
	if !hasTag(post.Hashtags, report.Category) || !hasTag(post.Hashtags, "report") {
		t.Errorf("post.Hashtags = %v, want category and report tags", post.Hashtags)
	}
	if post.Anonymous {
		t.Error("public report produced anonymous post")
	}
	if post.Location == nil || post.Location.Address != report.Address {
		t.Errorf("post.Location = %+v, want report address snapshot", post.Location)
	}

	// Publishing again must refuse and must not add a second post.
	if _, _, err := svc.Publish(ctx, citizen(1), report.ReportID); apperrors.KindOf(err) != apperrors.KindConflict {
		t.Fatalf("second Publish() error = %v, want conflict", err)
	}
	if got := len(postRepo.posts); got != 1 {
		t.Fatalf("posts after double publish = %d, want exactly 1", got)
	}

	if _, _, err := svc.Publish(ctx, citizen(1), "TLK-MISSING-0000"); apperrors.KindOf(err) != apperrors.KindNotFound {
		t.Fatalf("Publish() on unknown report error = %v, want not_found", err)
	}
}

func TestPublishAnonymousReport(t *testing.T) {
	ctx := context.Background()
	svc := NewReportService(newFakeReportRepo(), newFakePostRepo(), newFakeCommentRepo(), &fakeNotifier{})

	req := validReportRequest()
	req.Privacy = models.PrivacyAnonymous
	report, err := svc.CreateReport(citizen(1), req)
	if err != nil {
		t.Fatalf("CreateReport() error = %v", err)
	}

	_, post, err := svc.Publish(ctx, citizen(1), report.ReportID)
	if err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if !post.Anonymous {
		t.Error("anonymous report published without the anonymous flag")
	}
	if post.UserID != 1 {
		t.Errorf("post.UserID = %d, want the real owner retained in storage", post.UserID)
	}
}

// racingReportRepo simulates losing the publish flip to a concurrent caller.
// Before losing, it lands a comment on the fresh post, standing in for a
// reader who found the post in the window between creation and the flip.
type racingReportRepo struct {
	*fakeReportRepo
	commentRepo *fakeCommentRepo
}

func (r *racingReportRepo) MarkPublished(reportID, feedPostID string) (bool, error) {
	if r.commentRepo != nil {
		_ = r.commentRepo.CreateComment(&models.Comment{PostID: feedPostID, UserID: 9, Text: "fast reader"})
	}
	return false, nil
}

func TestPublishLostRaceCompensates(t *testing.T) {
	ctx := context.Background()
	commentRepo := newFakeCommentRepo()
	reportRepo := &racingReportRepo{fakeReportRepo: newFakeReportRepo(), commentRepo: commentRepo}
	postRepo := newFakePostRepo()
	svc := NewReportService(reportRepo, postRepo, commentRepo, &fakeNotifier{})

	report, err := svc.CreateReport(citizen(1), validReportRequest())
	if err != nil {
		t.Fatalf("CreateReport() error = %v", err)
	}

	if _, _, err := svc.Publish(ctx, citizen(1), report.ReportID); apperrors.KindOf(err) != apperrors.KindConflict {
		t.Fatalf("Publish() error = %v, want conflict", err)
	}
	if got := len(postRepo.posts); got != 0 {
		t.Fatalf("posts after lost flip = %d, want the fresh post removed", got)
	}
	if got := len(commentRepo.comments); got != 0 {
		t.Fatalf("comments after lost flip = %d, want the window comment removed", got)
	}
}

func TestAnalytics(t *testing.T) {
	reportRepo := newFakeReportRepo()
	svc := NewReportService(reportRepo, newFakePostRepo(), newFakeCommentRepo(), &fakeNotifier{})

	if _, err := svc.CreateReport(citizen(1), validReportRequest()); err != nil {
		t.Fatalf("CreateReport() error = %v", err)
	}
	trafficReq := validReportRequest()
	trafficReq.Category = models.CategoryTraffic
	report, err := svc.CreateReport(citizen(2), trafficReq)
	if err != nil {
		t.Fatalf("CreateReport() error = %v", err)
	}
	if _, err := svc.UpdateStatus(authority(5), report.ReportID, &models.UpdateReportStatusRequest{Status: models.StatusResolved}); err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}

	if _, err := svc.Analytics(citizen(1)); apperrors.KindOf(err) != apperrors.KindAccessDenied {
		t.Fatalf("Analytics() by citizen error = %v, want access_denied", err)
	}

	summary, err := svc.Analytics(authority(5))
	if err != nil {
		t.Fatalf("Analytics() error = %v", err)
	}
	if summary.Total != 2 || summary.Pending != 1 || summary.Resolved != 1 {
		t.Errorf("summary = %+v, want total 2, pending 1, resolved 1", summary)
	}
	if summary.ByCategory[models.CategoryWater] != 1 || summary.ByCategory[models.CategoryTraffic] != 1 {
		t.Errorf("by category = %v, want one water and one traffic", summary.ByCategory)
	}
}
