//go:build e2e
// +build e2e

package e2e

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"
)

// The e2e suite runs against a live server seeded with the sample dataset:
//
//	go run ./cmd/seed-dataset
//	go run ./cmd/server
//	go test -tags e2e ./test/e2e
const (
	defaultBaseURL = "http://localhost:8080/api/v1"
	seededStudent  = "123456"
)

var baseURL string

func TestMain(m *testing.M) {
	// Load .env if present (ignore error)
	_ = godotenv.Load("../../.env")

	baseURL = os.Getenv("E2E_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	os.Exit(m.Run())
}

func TestE2EFlow(t *testing.T) {
	// Step 1: Health check
	t.Run("Health", func(t *testing.T) {
		resp, err := get("/health")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status %d: %s", resp.StatusCode, readBody(resp))
		}
	})

	// Step 2: List students
	t.Run("ListStudents", func(t *testing.T) {
		resp, err := get("/api/v1/students")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status %d: %s", resp.StatusCode, readBody(resp))
		}

		var body struct {
			Data struct {
				Students []struct {
					ID         string `json:"id"`
					StudentURL string `json:"student_url"`
				} `json:"students"`
			} `json:"data"`
		}
		decodeJSON(t, resp, &body)

		found := false
		for _, s := range body.Data.Students {
			if s.ID == seededStudent {
				found = true
				if s.StudentURL == "" {
					t.Error("student_url missing")
				}
				break
			}
		}
		if !found {
			t.Fatalf("seeded student %s not in index (run cmd/seed-dataset?)", seededStudent)
		}
	})

	// Step 3: Student profile with resource links
	t.Run("StudentProfile", func(t *testing.T) {
		resp, err := get("/api/v1/students/" + seededStudent)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status %d: %s", resp.StatusCode, readBody(resp))
		}

		var body struct {
			Data struct {
				Name      string `json:"name"`
				GradesURL string `json:"grades_url"`
			} `json:"data"`
		}
		decodeJSON(t, resp, &body)
		if body.Data.Name == "" {
			t.Error("name missing")
		}
		if body.Data.GradesURL == "" {
			t.Error("grades_url missing")
		}
	})

	// Step 4: Malformed id rejected before the core runs
	t.Run("InvalidStudentID", func(t *testing.T) {
		resp, err := get("/api/v1/students/12ab56")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", resp.StatusCode, readBody(resp))
		}

		var body struct {
			Error struct {
				Code string `json:"code"`
			} `json:"error"`
		}
		decodeJSON(t, resp, &body)
		if body.Error.Code != "INVALID_ID" {
			t.Errorf("expected INVALID_ID, got %q", body.Error.Code)
		}
	})

	// Step 5: Unknown (but well-formed) student id
	t.Run("UnknownStudent", func(t *testing.T) {
		resp, err := get("/api/v1/students/999999")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("expected 404, got %d: %s", resp.StatusCode, readBody(resp))
		}
	})

	// Step 6: Classwork for an explicit run, with interval echo
	t.Run("ClassworkForRun", func(t *testing.T) {
		resp, err := get(fmt.Sprintf("/api/v1/students/%s/classwork?run_id=3", seededStudent))
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status %d: %s", resp.StatusCode, readBody(resp))
		}

		var body struct {
			Data struct {
				Interval struct {
					Start int64 `json:"start"`
					End   int64 `json:"end"`
				} `json:"interval"`
				Courses map[string]struct {
					Name      string            `json:"name"`
					Classwork []json.RawMessage `json:"classwork"`
				} `json:"courses"`
			} `json:"data"`
		}
		decodeJSON(t, resp, &body)

		if body.Data.Interval.Start != 1572847200000 || body.Data.Interval.End != 1577080800000 {
			t.Errorf("unexpected interval %d..%d", body.Data.Interval.Start, body.Data.Interval.End)
		}
		if len(body.Data.Courses) == 0 {
			t.Fatal("no courses in classwork listing")
		}
	})

	// Step 7: Grouped grades, with query passthrough on the averages link
	t.Run("GradesForRun", func(t *testing.T) {
		resp, err := get(fmt.Sprintf("/api/v1/students/%s/grades?run_id=3", seededStudent))
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status %d: %s", resp.StatusCode, readBody(resp))
		}

		var body struct {
			Data struct {
				CourseGrades     map[string]map[string][]float64 `json:"course_grades"`
				GradesAverageURL string                          `json:"grades_average_url"`
			} `json:"data"`
		}
		decodeJSON(t, resp, &body)

		if len(body.Data.CourseGrades) == 0 {
			t.Fatal("no course grades")
		}
		want := fmt.Sprintf("/api/v1/students/%s/grades/average?run_id=3", seededStudent)
		if len(body.Data.GradesAverageURL) < len(want) || body.Data.GradesAverageURL[len(body.Data.GradesAverageURL)-len(want):] != want {
			t.Errorf("averages link %q does not carry the query", body.Data.GradesAverageURL)
		}
	})

	// Step 8: Weighted averages for the seeded run
	t.Run("GradeAverages", func(t *testing.T) {
		resp, err := get(fmt.Sprintf("/api/v1/students/%s/grades/average?run_id=3", seededStudent))
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status %d: %s", resp.StatusCode, readBody(resp))
		}

		var body struct {
			Data struct {
				Grades []struct {
					CourseID string `json:"course_id"`
					Average  string `json:"average"`
				} `json:"grades"`
			} `json:"data"`
		}
		decodeJSON(t, resp, &body)

		averages := map[string]string{}
		for _, g := range body.Data.Grades {
			averages[g.CourseID] = g.Average
		}
		if averages["0123 - 1"] != "85.00" {
			t.Errorf("Algebra II average = %q, want 85.00", averages["0123 - 1"])
		}
		if averages["0341 - 2"] != "58.00" {
			t.Errorf("Biology average = %q, want 58.00", averages["0341 - 2"])
		}
		// Only the missing-work sentinel was submitted for English, so it
		// must not appear with an average at all.
		if _, ok := averages["0225 - 3"]; ok {
			t.Error("English should have no average for this run")
		}
	})

	// Step 9: Alerts alongside averages
	t.Run("GradeAveragesWithAlerts", func(t *testing.T) {
		resp, err := get(fmt.Sprintf("/api/v1/students/%s/grades/average?run_id=3&alerts&alerts_score=60", seededStudent))
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status %d: %s", resp.StatusCode, readBody(resp))
		}

		var body struct {
			Data struct {
				Alerts []struct {
					Assignment string `json:"assignment"`
					Comment    string `json:"comment"`
				} `json:"alerts"`
			} `json:"data"`
		}
		decodeJSON(t, resp, &body)

		if len(body.Data.Alerts) != 2 {
			t.Fatalf("expected 2 alerts, got %d: %s", len(body.Data.Alerts), mustJSON(body.Data.Alerts))
		}
	})

	// Step 10: Responses are cacheable and rate limited headers present
	t.Run("ResponseHeaders", func(t *testing.T) {
		resp, err := get("/api/v1/students")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		if cc := resp.Header.Get("Cache-Control"); cc == "" {
			t.Error("Cache-Control header missing")
		}
		if rid := resp.Header.Get("X-Request-ID"); rid == "" {
			t.Error("X-Request-ID header missing")
		}
	})
}

// Helpers

func get(path string) (*http.Response, error) {
	// Paths are absolute so /health (outside the API prefix) works too.
	req, err := http.NewRequest("GET", serverRoot()+path, nil)
	if err != nil {
		return nil, err
	}
	client := &http.Client{Timeout: 10 * time.Second}
	return client.Do(req)
}

// serverRoot strips the /api/v1 suffix from baseURL so absolute paths work.
func serverRoot() string {
	const suffix = "/api/v1"
	if len(baseURL) > len(suffix) && baseURL[len(baseURL)-len(suffix):] == suffix {
		return baseURL[:len(baseURL)-len(suffix)]
	}
	return baseURL
}

func readBody(resp *http.Response) string {
	b, _ := io.ReadAll(resp.Body)
	return string(b)
}

func decodeJSON(t *testing.T, resp *http.Response, v interface{}) {
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("json decode: %v", err)
	}
}

func mustJSON(v interface{}) string {
	b, _ := json.Marshal(v)
	return string(b)
}
