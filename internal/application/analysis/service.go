package analysis

import (
	"context"
	"fmt"
	"log"

	"github.com/pulse-cx/insight/internal/application"
	apptasks "github.com/pulse-cx/insight/internal/application/tasks"
	"github.com/pulse-cx/insight/internal/domain/report"
	"github.com/pulse-cx/insight/internal/domain/reviews"
	"github.com/pulse-cx/insight/internal/domain/topics"
)

// Progress milestones emitted at stage boundaries.
const (
	progressCollecting   = 10
	progressAnalyzing    = 40
	progressSynthesizing = 70
)

// Service implements the analysis pipeline use-case: collect reviews, assign
// topics, synthesize the report, persist it. One background run per task id;
// runs are independent and carry no retry.
type Service struct {
	Collector reviews.Collector
	Assigner  topics.Assigner
	Synth     report.Synthesizer
	Reports   report.Repository
	Archive   reviews.Archive // optional; nil disables raw batch archiving
	Tracker   *apptasks.Tracker
	Clock     application.Clock
}

// RunUntilDone executes the pipeline for an already-registered task with
// context.Background(), so the run outlives the HTTP request that queued it.
func (s *Service) RunUntilDone(taskID, storeName, address string) {
	s.run(context.Background(), taskID, storeName, address)
}

func (s *Service) run(ctx context.Context, taskID, storeName, address string) {
	// Any panic during a stage fails the whole task, once, permanently.
	defer func() {
		if r := recover(); r != nil {
			log.Printf("task=%s panic: %v", taskID, r)
			s.Tracker.Fail(taskID, fmt.Sprintf("서버 내부 오류: %v", r))
		}
	}()

	// 1. collection
	s.Tracker.Progress(taskID, progressCollecting, "리뷰 데이터 수집 중 (네이버/카카오)")

	revs, err := s.Collector.Collect(ctx, storeName, address)
	if err != nil {
		log.Printf("task=%s collect error: %v", taskID, err)
		s.Tracker.Fail(taskID, fmt.Sprintf("서버 내부 오류: %v", err))
		return
	}
	if len(revs) == 0 {
		s.Tracker.Fail(taskID, "리뷰를 찾을 수 없습니다.")
		return
	}
	log.Printf("task=%s collected %d reviews", taskID, len(revs))

	// 1.5 archive the raw batch; never fails the task
	if s.Archive != nil {
		if key, err := s.Archive.ArchiveRawBatch(ctx, taskID, storeName, address, revs); err != nil {
			log.Printf("task=%s raw batch archive failed: %v", taskID, err)
		} else {
			log.Printf("task=%s raw batch archived key=%s", taskID, key)
		}
	}

	// 2. topic assignment
	s.Tracker.Progress(taskID, progressAnalyzing, "리뷰 토픽 분석 중 (AI)")

	res, err := s.Assigner.Assign(ctx, revs)
	if err != nil {
		log.Printf("task=%s assign error: %v", taskID, err)
		s.Tracker.Fail(taskID, fmt.Sprintf("분석 실패: %v", err))
		return
	}
	log.Printf("task=%s assigned %d topics over %d docs", taskID, len(res.Topics), res.DocCount)

	// 3. persona synthesis
	s.Tracker.Progress(taskID, progressSynthesizing, "고객 페르소나 및 리포트 생성 중")

	rep, err := s.Synth.Synthesize(ctx, storeName, res)
	if err != nil {
		log.Printf("task=%s synthesize error: %v", taskID, err)
		s.Tracker.Fail(taskID, fmt.Sprintf("서버 내부 오류: %v", err))
		return
	}
	rep.CreatedAt = s.Clock.Now()

	// 4. persist; never fails the task
	if s.Reports != nil {
		if err := s.Reports.Save(ctx, taskID, rep); err != nil {
			log.Printf("task=%s report save failed: %v", taskID, err)
		}
	}

	// 5. done
	s.Tracker.Complete(taskID, "분석 완료!", rep)
	log.Printf("task=%s completed", taskID)
}
