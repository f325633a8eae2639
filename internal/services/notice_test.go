package services

import (
	"fmt"
	"testing"

	"github.com/docgen/backend/internal/models"
	"github.com/docgen/backend/pkg/response"
)

func createTestNotice(t *testing.T, svc *NoticeService, postDate string) *NoticeResponse {
	t.Helper()
	notice, err := svc.Create(&CreateNoticeRequest{
		MemberID:   1,
		Title:      "notice " + postDate,
		Content:    "content",
		NoticeType: models.NoticeNormal,
		PostDate:   postDate,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return notice
}

func TestNoticeCreateAndGet(t *testing.T) {
	svc := NewNoticeService(newTestDB(t))

	created := createTestNotice(t, svc, "2025-06-01")

	if created.PostDate != "2025-06-01" {
		t.Errorf("PostDate = %q, expected %q", created.PostDate, "2025-06-01")
	}
	if created.NoticeType != models.NoticeNormal {
		t.Errorf("NoticeType = %q, expected %q", created.NoticeType, models.NoticeNormal)
	}

	fetched, err := svc.GetByID(created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if fetched.Title != created.Title {
		t.Errorf("Title = %q, expected %q", fetched.Title, created.Title)
	}
}

func TestNoticeList_PaginationAndOrdering(t *testing.T) {
	svc := NewNoticeService(newTestDB(t))

	for i := 1; i <= 5; i++ {
		createTestNotice(t, svc, fmt.Sprintf("2025-06-0%d", i))
	}

	notices, total, err := svc.List(1, 2)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 5 {
		t.Errorf("total = %d, expected 5", total)
	}
	if len(notices) != 2 {
		t.Fatalf("page size = %d, expected 2", len(notices))
	}
	if notices[0].PostDate != "2025-06-05" || notices[1].PostDate != "2025-06-04" {
		t.Errorf("page 1 = [%s, %s], expected newest post first",
			notices[0].PostDate, notices[1].PostDate)
	}

	notices, total, err = svc.List(3, 2)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 5 {
		t.Errorf("total = %d, expected 5", total)
	}
	if len(notices) != 1 {
		t.Fatalf("last page size = %d, expected 1", len(notices))
	}
	if notices[0].PostDate != "2025-06-01" {
		t.Errorf("last page = %s, expected oldest post", notices[0].PostDate)
	}
}

func TestNoticeList_OutOfRangePage(t *testing.T) {
	svc := NewNoticeService(newTestDB(t))
	createTestNotice(t, svc, "2025-06-01")

	notices, total, err := svc.List(10, 10)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 1 {
		t.Errorf("total = %d, expected 1", total)
	}
	if len(notices) != 0 {
		t.Errorf("page = %v, expected empty", notices)
	}
}

func TestNoticeUpdate_PartialFields(t *testing.T) {
	svc := NewNoticeService(newTestDB(t))
	created := createTestNotice(t, svc, "2025-06-01")

	noticeType := models.NoticeEvent
	updated, err := svc.Update(created.ID, &UpdateNoticeRequest{NoticeType: &noticeType})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if updated.NoticeType != models.NoticeEvent {
		t.Errorf("NoticeType = %q, expected %q", updated.NoticeType, models.NoticeEvent)
	}
	if updated.Title != created.Title {
		t.Errorf("Title = %q, should be unchanged", updated.Title)
	}
	if updated.PostDate != "2025-06-01" {
		t.Errorf("PostDate = %q, should be unchanged", updated.PostDate)
	}
}

func TestNoticeUpdate_NotFound(t *testing.T) {
	svc := NewNoticeService(newTestDB(t))

	title := "anything"
	_, err := svc.Update(999, &UpdateNoticeRequest{Title: &title})
	if !response.IsNotFound(err) {
		t.Errorf("Update(999) error = %v, expected not found", err)
	}
}

func TestNoticeDelete(t *testing.T) {
	svc := NewNoticeService(newTestDB(t))
	created := createTestNotice(t, svc, "2025-06-01")

	if err := svc.Delete(created.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := svc.GetByID(created.ID); !response.IsNotFound(err) {
		t.Errorf("GetByID after delete error = %v, expected not found", err)
	}

	if err := svc.Delete(created.ID); !response.IsNotFound(err) {
		t.Errorf("second Delete() error = %v, expected not found", err)
	}
}
