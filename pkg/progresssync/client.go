package progresssync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// HTTPReporter sends progress snapshots to the backend's activity API.
type HTTPReporter struct {
	BaseURL string
	Token   string
	Client  *http.Client
}

// NewHTTPReporter creates a reporter against baseURL (e.g.
// "https://api.learnloop.dev") authenticating with the given bearer token.
func NewHTTPReporter(baseURL, token string) *HTTPReporter {
	return &HTTPReporter{
		BaseURL: baseURL,
		Token:   token,
		Client:  &http.Client{Timeout: 5 * time.Second},
	}
}

type progressPayload struct {
	CourseID      string `json:"courseId"`
	ProgressCount int    `json:"progressCount"`
	MistakeCount  int    `json:"mistakeCount"`
}

// ReportProgress implements Reporter via PUT /api/activity/progress.
func (r *HTTPReporter) ReportProgress(ctx context.Context, courseID string, progress, mistakes int) error {
	payload, err := json.Marshal(progressPayload{
		CourseID:      courseID,
		ProgressCount: progress,
		MistakeCount:  mistakes,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, r.BaseURL+"/api/activity/progress", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+r.Token)

	resp, err := r.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("progress sync: unexpected status %d", resp.StatusCode)
	}
	return nil
}
