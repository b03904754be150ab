package middleware

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"
)

// Checker is a single dependency probe.
type Checker interface {
	Check(ctx context.Context) error
}

// DatabaseChecker pings the report database.
type DatabaseChecker struct {
	DB *sql.DB
}

func (c *DatabaseChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return c.DB.PingContext(ctx)
}

// BucketLister is the slice of the object-store client the probe needs.
type BucketLister interface {
	BucketExists(ctx context.Context, bucket string) (bool, error)
}

// ObjectStoreChecker verifies the archive bucket is reachable.
type ObjectStoreChecker struct {
	Client BucketLister
	Bucket string
}

func (c *ObjectStoreChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	_, err := c.Client.BucketExists(ctx, c.Bucket)
	return err
}

type healthReport struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]checkResult `json:"checks"`
}

type checkResult struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HealthHandler runs every registered probe and reports 503 if any fails.
func HealthHandler(checkers map[string]Checker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		rep := healthReport{
			Status:    "healthy",
			Timestamp: time.Now(),
			Checks:    make(map[string]checkResult),
		}
		for name, c := range checkers {
			if err := c.Check(ctx); err != nil {
				rep.Status = "unhealthy"
				rep.Checks[name] = checkResult{Status: "unhealthy", Message: err.Error()}
			} else {
				rep.Checks[name] = checkResult{Status: "healthy"}
			}
		}

		code := http.StatusOK
		if rep.Status == "unhealthy" {
			code = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(rep)
	}
}

// LivenessHandler answers as long as the process is up.
func LivenessHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
