// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Chanakan5591/carbonyx/config"
	"github.com/Chanakan5591/carbonyx/internal/infra/dependency"
	"github.com/Chanakan5591/carbonyx/internal/integration/adapters"
	"github.com/Chanakan5591/carbonyx/internal/integration/persistence/model"
	"github.com/Chanakan5591/carbonyx/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

type testContext struct {
	uri          string
	headers      map[string]string
	client       *http.Client
	response     *response
	accessToken  string
	lastRecordID uuid.UUID
}

type response struct {
	status int
	body   any
}

var (
	serverInit     sync.Once
	testServerPort int
	testDB         *mock.Db
	testRedis      = mock.NewRedis()
	testClock      = mock.NewTime()
)

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
		testServerPort = findAvailablePort()
		testDB = mock.NewDb("carbonyx", map[string]any{
			"factors":        &model.EmissionFactorModel{},
			"collected_data": &model.ActivityRecordModel{},
			"offset_data":    &model.OffsetPurchaseModel{},
		})
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{
		client: &http.Client{Timeout: 10 * time.Second},
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)
	ctx.Given(`^the current time is "([^"]*)"$`, test.theCurrentTimeIs)

	// Auth steps
	ctx.Given(`^I am authenticated for organization "([^"]*)"$`, test.iAmAuthenticatedForOrganization)
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Data setup steps
	ctx.Given(`^the following emission factors exist:$`, test.theFollowingEmissionFactorsExist)
	ctx.Given(`^the following activity records exist for organization "([^"]*)":$`, test.theFollowingActivityRecordsExistFor)
	ctx.Given(`^the following offset purchases exist for organization "([^"]*)":$`, test.theFollowingOffsetPurchasesExistFor)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items$`, test.theResponseFieldShouldHaveItems)

	// Storage assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the rollup cache should hold (\d+) entries for organization "([^"]*)"$`, test.theRollupCacheShouldHoldEntriesFor)
}

func findAvailablePort() int {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		panic(err)
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port
}

func (t *testContext) before() error {
	t.uri = fmt.Sprintf("http://localhost:%d", testServerPort)
	t.headers = make(map[string]string)
	t.accessToken = ""
	t.response = nil
	t.lastRecordID = uuid.Nil
	testClock.Reset()

	if err := testDB.ClearDB(); err != nil {
		return err
	}
	return mock.ClearRedis(testRedis)
}

func testConfig() *config.Config {
	cfg := config.Load()
	cfg.JWT.Secret = testJWTSecret
	cfg.Rollup.Years = 5
	cfg.Rollup.Location = time.UTC
	cfg.Rollup.CacheTTL = time.Hour
	cfg.RateLimit.MaxWrites = 1000
	return cfg
}

func (t *testContext) startServer() error {
	serverInit.Do(func() {
		injector := dependency.NewInjector(testConfig(), testDB.DbConn, testRedis,
			dependency.WithClock(testClock.Now),
		)
		engine := injector.Router.Setup("test")

		server := &http.Server{
			Addr:    fmt.Sprintf(":%d", testServerPort),
			Handler: engine,
		}
		go func() {
			_ = server.ListenAndServe()
		}()
	})

	// Wait for server to be ready
	for i := 0; i < 50; i++ {
		resp, err := http.Get(t.uri + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	return errors.New("test server did not become healthy")
}

func (t *testContext) theAPIServerIsRunning() error {
	return t.startServer()
}

func (t *testContext) theCurrentTimeIs(value string) error {
	now, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return err
	}
	testClock.SetCurrentTime(now)
	return nil
}

func (t *testContext) iAmAuthenticatedForOrganization(organizationID string) error {
	token, err := adapters.SignAccessToken(testJWTSecret, "user-"+organizationID, organizationID, time.Hour)
	if err != nil {
		return err
	}
	t.accessToken = token
	return nil
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	t.accessToken = "" // Clear access token to simulate unauthenticated request
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

// tableRows maps each data row of a godog table to its header columns.
func tableRows(table *godog.Table) ([]map[string]string, error) {
	if len(table.Rows) < 1 {
		return nil, errors.New("table has no header row")
	}
	header := table.Rows[0].Cells
	rows := make([]map[string]string, 0, len(table.Rows)-1)
	for _, row := range table.Rows[1:] {
		if len(row.Cells) != len(header) {
			return nil, fmt.Errorf("row has %d cells, header has %d", len(row.Cells), len(header))
		}
		values := make(map[string]string, len(header))
		for i, cell := range row.Cells {
			values[header[i].Value] = cell.Value
		}
		rows = append(rows, values)
	}
	return rows, nil
}

func (t *testContext) theFollowingEmissionFactorsExist(table *godog.Table) error {
	rows, err := tableRows(table)
	if err != nil {
		return err
	}
	for _, row := range rows {
		id, err := strconv.ParseUint(row["id"], 10, 64)
		if err != nil {
			return err
		}
		factorValue, err := decimal.NewFromString(row["factor_value"])
		if err != nil {
			return err
		}
		factor := &model.EmissionFactorModel{
			ID:           uint(id),
			Name:         row["name"],
			CategoryType: row["category_type"],
			Unit:         row["unit"],
			FactorValue:  factorValue,
		}
		if err := testDB.DbConn.Create(factor).Error; err != nil {
			return err
		}
	}
	return nil
}

func (t *testContext) theFollowingActivityRecordsExistFor(organizationID string, table *godog.Table) error {
	rows, err := tableRows(table)
	if err != nil {
		return err
	}
	for _, row := range rows {
		factorID, err := strconv.ParseUint(row["factor_id"], 10, 64)
		if err != nil {
			return err
		}
		var factor model.EmissionFactorModel
		if err := testDB.DbConn.First(&factor, factorID).Error; err != nil {
			return fmt.Errorf("factor %d: %w", factorID, err)
		}
		value, err := decimal.NewFromString(row["value"])
		if err != nil {
			return err
		}
		timestamp, err := time.Parse(time.RFC3339, row["timestamp"])
		if err != nil {
			return err
		}
		record := &model.ActivityRecordModel{
			ID:             uuid.New(),
			OrganizationID: organizationID,
			FactorID:       factor.ID,
			RecordedFactor: factor.FactorValue,
			Value:          value,
			Timestamp:      timestamp.Unix(),
			CreatedAt:      time.Now().UTC(),
		}
		if err := testDB.DbConn.Create(record).Error; err != nil {
			return err
		}
		t.lastRecordID = record.ID
	}
	return nil
}

func (t *testContext) theFollowingOffsetPurchasesExistFor(organizationID string, table *godog.Table) error {
	rows, err := tableRows(table)
	if err != nil {
		return err
	}
	for _, row := range rows {
		tco2e, err := decimal.NewFromString(row["tco2e"])
		if err != nil {
			return err
		}
		price, err := decimal.NewFromString(row["price_per_tco2e"])
		if err != nil {
			return err
		}
		timestamp, err := time.Parse(time.RFC3339, row["timestamp"])
		if err != nil {
			return err
		}
		purchase := &model.OffsetPurchaseModel{
			ID:             uuid.New(),
			OrganizationID: organizationID,
			Tco2e:          tco2e,
			PricePerTco2e:  price,
			Timestamp:      timestamp.Unix(),
			CreatedAt:      time.Now().UTC(),
		}
		if err := testDB.DbConn.Create(purchase).Error; err != nil {
			return err
		}
	}
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, t.replacePlaceholders(path), payload)
}

func (t *testContext) replacePlaceholders(content string) string {
	return strings.ReplaceAll(content, "{{activity_id}}", t.lastRecordID.String())
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, t.uri+path, body)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}

	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{status: resp.StatusCode}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
		return nil
	}
	t.response.body = responseBody

	// Capture the created activity so later steps can delete it
	if idStr, ok := responseBody["id"].(string); ok {
		if _, isActivity := responseBody["factor_id"]; isActivity {
			if id, err := uuid.Parse(idStr); err == nil {
				t.lastRecordID = id
			}
		}
	}

	return nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) responseObject() (map[string]any, error) {
	if t.response == nil {
		return nil, errors.New("no response received")
	}
	body, ok := t.response.body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}
	return body, nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}

	value := getFieldValue(body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}

	if getFieldValue(body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, quantity int) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}

	items, ok := getFieldValue(body, field).([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not an array in response: %v", field, body)
	}
	if len(items) != quantity {
		return fmt.Errorf("field '%s' expected %d items, got %d", field, quantity, len(items))
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	entity, ok := testDB.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(entity).Elem()
	entitySlicePtr := reflect.New(reflect.SliceOf(entityType))

	if err := testDB.DbConn.Find(entitySlicePtr.Interface()).Error; err != nil {
		return err
	}

	count := entitySlicePtr.Elem().Len()
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s', got %d", quantity, table, count)
	}
	return nil
}

func (t *testContext) theRollupCacheShouldHoldEntriesFor(quantity int, organizationID string) error {
	index := fmt.Sprintf("carbonyx:rollup:%s:index", organizationID)
	count, err := testRedis.SCard(context.Background(), index).Result()
	if err != nil {
		return err
	}
	if int(count) != quantity {
		return fmt.Errorf("expected %d cached rollups for '%s', got %d", quantity, organizationID, count)
	}
	return nil
}

func getFieldValue(object map[string]any, dotSeparatedField string) any {
	var field any = object

	for _, currentField := range strings.Split(dotSeparatedField, ".") {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			arr, ok := field.([]any)
			if !ok || i >= len(arr) {
				return nil
			}
			field = arr[i]
			continue
		}

		m, ok := field.(map[string]any)
		if !ok {
			return nil
		}
		field = m[currentField]
	}

	return field
}
