//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/cucumber/godog"
)

// testContext holds state shared across step definitions within a scenario.
type testContext struct {
	baseURL      string
	client       *http.Client
	response     *http.Response
	responseBody []byte
	err          error

	// vars holds ids remembered from earlier responses, substituted into
	// paths and bodies as {name}.
	vars map[string]string
}

// newTestContext creates a new test context with sensible defaults.
func newTestContext() *testContext {
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	return &testContext{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		vars: make(map[string]string),
	}
}

// reset clears response state between scenarios.
func (tc *testContext) reset() {
	if tc.response != nil && tc.response.Body != nil {
		tc.response.Body.Close()
	}

	tc.response = nil
	tc.responseBody = nil
	tc.err = nil
	tc.vars = make(map[string]string)
}

// InitializeScenario registers step definitions for each scenario.
func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := newTestContext()

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	ctx.Step(`^the service is running$`, tc.theServiceIsRunning)
	ctx.Step(`^I send (GET|DELETE) "([^"]*)"$`, tc.iSend)
	ctx.Step(`^I send (POST|PATCH) "([^"]*)" with body:$`, tc.iSendWithBody)
	ctx.Step(`^an author "([^"]*)" exists with body:$`, tc.aResourceExists("/authors"))
	ctx.Step(`^a post "([^"]*)" exists with body:$`, tc.aResourceExists("/posts"))
	ctx.Step(`^the response status should be (\d+)$`, tc.theResponseStatusShouldBe)
	ctx.Step(`^the response should contain "([^"]*)"$`, tc.theResponseShouldContain)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, tc.theResponseFieldShouldBe)
	ctx.Step(`^the response id should be "([^"]*)"$`, tc.theResponseIDShouldBe)
	ctx.Step(`^the response should be a list$`, tc.theResponseShouldBeAList)
	ctx.Step(`^the response body should be empty$`, tc.theResponseBodyShouldBeEmpty)
	ctx.Step(`^the error code should be "([^"]*)"$`, tc.theErrorCodeShouldBe)
}

// theServiceIsRunning verifies the service is reachable.
func (tc *testContext) theServiceIsRunning() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, tc.baseURL+"/-/ready", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := tc.client.Do(req)
	if err != nil {
		return fmt.Errorf("service is not running at %s: %w", tc.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service readiness check failed with status %d", resp.StatusCode)
	}

	return nil
}

// expand replaces {name} with remembered ids.
func (tc *testContext) expand(s string) string {
	for name, value := range tc.vars {
		s = strings.ReplaceAll(s, "{"+name+"}", value)
	}

	return s
}

func (tc *testContext) do(method, path string, body []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, tc.baseURL+tc.expand(path), r)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	tc.response, tc.err = tc.client.Do(req)
	if tc.err != nil {
		return fmt.Errorf("request failed: %w", tc.err)
	}
	defer tc.response.Body.Close()

	tc.responseBody, tc.err = io.ReadAll(tc.response.Body)
	if tc.err != nil {
		return fmt.Errorf("failed to read response body: %w", tc.err)
	}

	return nil
}

func (tc *testContext) iSend(method, path string) error {
	return tc.do(method, path, nil)
}

func (tc *testContext) iSendWithBody(method, path string, body *godog.DocString) error {
	return tc.do(method, path, []byte(tc.expand(body.Content)))
}

// aResourceExists creates a resource through the API and remembers its id
// under name.
func (tc *testContext) aResourceExists(collection string) func(name string, body *godog.DocString) error {
	return func(name string, body *godog.DocString) error {
		if err := tc.do(http.MethodPost, collection, []byte(tc.expand(body.Content))); err != nil {
			return err
		}

		if err := tc.theResponseStatusShouldBe(http.StatusOK); err != nil {
			return err
		}

		id, err := tc.responseID()
		if err != nil {
			return err
		}

		tc.vars[name] = id

		return nil
	}
}

func (tc *testContext) responseObject() (map[string]any, error) {
	var obj map[string]any
	if err := json.Unmarshal(tc.responseBody, &obj); err != nil {
		return nil, fmt.Errorf("response is not a JSON object: %w. Body: %s", err, tc.responseBody)
	}

	return obj, nil
}

// responseID reads {"_id": {"$oid": ...}}.
func (tc *testContext) responseID() (string, error) {
	obj, err := tc.responseObject()
	if err != nil {
		return "", err
	}

	id, ok := obj["_id"].(map[string]any)
	if !ok {
		return "", fmt.Errorf("response has no _id object. Body: %s", tc.responseBody)
	}

	oid, ok := id["$oid"].(string)
	if !ok || len(oid) != 24 {
		return "", fmt.Errorf("response _id has no 24-character $oid. Body: %s", tc.responseBody)
	}

	return oid, nil
}

// theResponseStatusShouldBe asserts the response status code.
func (tc *testContext) theResponseStatusShouldBe(expectedCode int) error {
	if tc.response == nil {
		return fmt.Errorf("no response received")
	}

	if tc.response.StatusCode != expectedCode {
		return fmt.Errorf("expected status %d, got %d. Body: %s",
			expectedCode, tc.response.StatusCode, string(tc.responseBody))
	}

	return nil
}

// theResponseShouldContain asserts the response body contains the given text.
func (tc *testContext) theResponseShouldContain(text string) error {
	if tc.responseBody == nil {
		return fmt.Errorf("no response body")
	}

	if !strings.Contains(string(tc.responseBody), tc.expand(text)) {
		return fmt.Errorf("response body does not contain %q.\nBody: %s", text, tc.responseBody)
	}

	return nil
}

func (tc *testContext) theResponseFieldShouldBe(field, want string) error {
	obj, err := tc.responseObject()
	if err != nil {
		return err
	}

	want = tc.expand(want)
	if got := fmt.Sprint(obj[field]); got != want {
		return fmt.Errorf("expected %s to be %q, got %q", field, want, got)
	}

	return nil
}

func (tc *testContext) theResponseIDShouldBe(name string) error {
	id, err := tc.responseID()
	if err != nil {
		return err
	}

	if id != tc.vars[name] {
		return fmt.Errorf("expected id of %s (%s), got %s", name, tc.vars[name], id)
	}

	return nil
}

func (tc *testContext) theResponseShouldBeAList() error {
	var list []map[string]any
	if err := json.Unmarshal(tc.responseBody, &list); err != nil {
		return fmt.Errorf("response is not a JSON array: %w. Body: %s", err, tc.responseBody)
	}

	return nil
}

func (tc *testContext) theResponseBodyShouldBeEmpty() error {
	if len(bytes.TrimSpace(tc.responseBody)) != 0 {
		return fmt.Errorf("expected empty body, got %s", tc.responseBody)
	}

	return nil
}

func (tc *testContext) theErrorCodeShouldBe(code string) error {
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}

	if err := json.Unmarshal(tc.responseBody, &envelope); err != nil {
		return fmt.Errorf("response is not an error envelope: %w. Body: %s", err, tc.responseBody)
	}

	if envelope.Error.Code != code {
		return fmt.Errorf("expected error code %s, got %s", code, envelope.Error.Code)
	}

	return nil
}

// TestFeatures runs the GoDog BDD test suite against BASE_URL.
func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"../features"},
			TestingT: t,
			Tags:     os.Getenv("GODOG_TAGS"),
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
