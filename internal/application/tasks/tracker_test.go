package tasks

import (
	"testing"

	"github.com/pulse-cx/insight/internal/domain/report"
	domain "github.com/pulse-cx/insight/internal/domain/tasks"
)

func TestCreateAndGet(t *testing.T) {
	tr := NewTracker()
	created := tr.Create("대기 중")

	got, err := tr.Get(created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != domain.StatusPending || got.Progress != 0 {
		t.Errorf("new task = %+v, want pending/0", got)
	}
}

func TestGetUnknown(t *testing.T) {
	tr := NewTracker()
	if _, err := tr.Get("nope"); err != domain.ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestResultBeforeCompletion(t *testing.T) {
	tr := NewTracker()
	task := tr.Create("")
	tr.Progress(task.ID, 40, "분석 중")

	if _, err := tr.Result(task.ID); err != domain.ErrNotCompleted {
		t.Errorf("err = %v, want ErrNotCompleted", err)
	}
}

func TestProgressMonotonic(t *testing.T) {
	tr := NewTracker()
	task := tr.Create("")

	tr.Progress(task.ID, 40, "분석 중")
	tr.Progress(task.ID, 10, "수집 중") // late milestone must not move progress back

	got, _ := tr.Get(task.ID)
	if got.Progress != 40 {
		t.Errorf("progress = %d, want 40", got.Progress)
	}
	if got.Status != domain.StatusProcessing {
		t.Errorf("status = %s, want processing", got.Status)
	}
}

func TestFailResetsProgressAndResult(t *testing.T) {
	tr := NewTracker()
	task := tr.Create("")
	tr.Progress(task.ID, 70, "생성 중")
	tr.Fail(task.ID, "리뷰를 찾을 수 없습니다.")

	got, _ := tr.Get(task.ID)
	if got.Status != domain.StatusFailed || got.Progress != 0 {
		t.Errorf("failed task = %+v, want failed/0", got)
	}
	if got.Result != nil {
		t.Error("failed task must hold no partial result")
	}
}

func TestTerminalStatesAreFinal(t *testing.T) {
	tr := NewTracker()
	task := tr.Create("")
	tr.Complete(task.ID, "완료", &report.Report{StoreName: "식당"})

	tr.Fail(task.ID, "늦은 실패")
	tr.Progress(task.ID, 10, "늦은 진행")

	got, _ := tr.Get(task.ID)
	if got.Status != domain.StatusCompleted || got.Progress != 100 {
		t.Errorf("task left terminal state: %+v", got)
	}
	if got.Result == nil || got.Result.StoreName != "식당" {
		t.Error("completed result must be retained")
	}

	res, err := tr.Result(task.ID)
	if err != nil || res == nil {
		t.Fatalf("Result after completion: %v", err)
	}
}
