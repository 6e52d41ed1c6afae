package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/imkonsowa/takeout-recommender/config"
	"github.com/imkonsowa/takeout-recommender/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeClient struct {
	mu      sync.Mutex
	output  string
	err     error
	prompts []string
}

var _ llm.Client = (*fakeClient)(nil)

func (f *fakeClient) Generate(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.prompts = append(f.prompts, prompt)

	return f.output, f.err
}

func (f *fakeClient) Close() error {
	return nil
}

func (f *fakeClient) lastPrompt(t *testing.T) string {
	t.Helper()

	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.prompts)

	return f.prompts[len(f.prompts)-1]
}

const restaurantsJSON = `[
	{"id": 1, "name": "Green Leaf", "cuisine": "vegan"},
	{"id": 2, "name": "Spice Hut", "cuisine": "indian"},
	{"id": 3, "name": "Burger Barn", "cuisine": "burger"},
	{"id": 4, "name": "Tofu Town", "cuisine": "Vegan Thai"},
	{"id": 5, "name": "Nameless", "cuisine": ""}
]`

func restaurantService(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/restaurants" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return srv
}

func newAgent(client llm.Client, restaurants RestaurantSource, mode string) *Agent {
	return &Agent{
		config:  &config.Config{},
		handler: NewHandler(client, restaurants, mode),
	}
}

func postRecommendations(t *testing.T, agent *Agent, body string) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/recommendations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	agent.Router().ServeHTTP(w, req)

	return w
}

func decodeRecommendations(t *testing.T, w *httptest.ResponseRecorder) []string {
	t.Helper()

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res RecommendationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))

	return res.Recommendations
}

func TestRecommendWithCandidates(t *testing.T) {
	srv := restaurantService(t, http.StatusOK, restaurantsJSON)
	client := &fakeClient{output: "Green Leaf - salads\nSpice Hut - curries\nTofu Town - stir fry\nBurger Barn - burgers"}
	agent := newAgent(client, NewRestaurantsClient(srv.URL+"/"), config.OutputModeText)

	got := decodeRecommendations(t, postRecommendations(t, agent, `{"preferences": ["vegan", "indian"]}`))
	assert.Equal(t, []string{
		"Green Leaf - salads",
		"Spice Hut - curries",
		"Tofu Town - stir fry",
	}, got)

	prompt := client.lastPrompt(t)
	assert.Contains(t, prompt, "User preferences: vegan, indian.")
	assert.Contains(t, prompt, "Only recommend restaurants from this list: Green Leaf (vegan); Spice Hut (indian); Tofu Town (Vegan Thai).")
	assert.NotContains(t, prompt, "Burger Barn")
}

func TestRecommendHeuristicFallbackToRawOutput(t *testing.T) {
	srv := restaurantService(t, http.StatusOK, restaurantsJSON)
	client := &fakeClient{output: "  I have no idea.  "}
	agent := newAgent(client, NewRestaurantsClient(srv.URL), config.OutputModeText)

	got := decodeRecommendations(t, postRecommendations(t, agent, `{"preferences": ["vegan"]}`))
	assert.Equal(t, []string{"I have no idea."}, got)
}

func TestRecommendRestaurantServiceError(t *testing.T) {
	srv := restaurantService(t, http.StatusInternalServerError, `{"error": "restaurant data not available"}`)
	client := &fakeClient{output: "One\nTwo\n\nThree\nFour"}
	agent := newAgent(client, NewRestaurantsClient(srv.URL), config.OutputModeText)

	got := decodeRecommendations(t, postRecommendations(t, agent, `{"preferences": ["vegan"]}`))
	assert.Equal(t, []string{"One", "Two", "Three"}, got)
	assert.NotContains(t, client.lastPrompt(t), "Only recommend")
}

func TestRecommendRestaurantServiceUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := &fakeClient{output: "Just eat pizza"}
	agent := newAgent(client, NewRestaurantsClient(url), config.OutputModeText)

	got := decodeRecommendations(t, postRecommendations(t, agent, `{"preferences": ["pizza"]}`))
	assert.Equal(t, []string{"Just eat pizza"}, got)
}

func TestRecommendWithoutRestaurantSource(t *testing.T) {
	client := &fakeClient{output: "A\nB"}
	agent := newAgent(client, nil, "")

	got := decodeRecommendations(t, postRecommendations(t, agent, `{"preferences": []}`))
	assert.Equal(t, []string{"A", "B"}, got)
	assert.Equal(t, BuildPrompt(nil, ""), client.lastPrompt(t))
}

func TestRecommendStructured(t *testing.T) {
	client := &fakeClient{output: `[{"name":"A","description":"a"},{"name":"B","description":"b"},{"name":"C","description":"c"}]`}
	agent := newAgent(client, nil, config.OutputModeJSON)

	got := decodeRecommendations(t, postRecommendations(t, agent, `{"preferences": ["vegan"]}`))
	assert.Equal(t, []string{"A: a", "B: b", "C: c"}, got)
	assert.True(t, strings.HasSuffix(client.lastPrompt(t), JSONInstruction))
}

func TestRecommendStructuredFallback(t *testing.T) {
	client := &fakeClient{output: `[{"name":"A","description":"a"}]`}
	agent := newAgent(client, nil, config.OutputModeJSON)

	got := decodeRecommendations(t, postRecommendations(t, agent, `{"preferences": ["vegan"]}`))
	assert.Equal(t, DefaultRecommendations(), got)
}

func TestRecommendLLMError(t *testing.T) {
	client := &fakeClient{err: errors.New("model offline")}
	agent := newAgent(client, nil, config.OutputModeText)

	w := postRecommendations(t, agent, `{"preferences": ["vegan"]}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "model offline")
}

func TestRecommendBadRequest(t *testing.T) {
	agent := newAgent(&fakeClient{}, nil, config.OutputModeText)

	for name, body := range map[string]string{
		"empty":               "",
		"malformed":           "{",
		"missing preferences": `{}`,
		"wrong type":          `{"preferences": "vegan"}`,
	} {
		t.Run(name, func(t *testing.T) {
			w := postRecommendations(t, agent, body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestHealthAndTestLLM(t *testing.T) {
	client := &fakeClient{output: "Once upon a time."}
	agent := newAgent(client, nil, config.OutputModeText)
	router := agent.Router()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message": "Hello from the LLM integration endpoint!"}`, w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test-llm", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var res TestLLMResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, llm.DiagnosticPrompt, res.Prompt)
	assert.Equal(t, llm.DiagnosticPrompt, client.lastPrompt(t))
	assert.Equal(t, "Once upon a time.", res.Output)
}

func TestTestLLMError(t *testing.T) {
	agent := newAgent(&fakeClient{err: errors.New("boom")}, nil, config.OutputModeText)

	w := httptest.NewRecorder()
	agent.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test-llm", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRestaurantsClientList(t *testing.T) {
	srv := restaurantService(t, http.StatusOK, restaurantsJSON)

	restaurants, err := NewRestaurantsClient(srv.URL).List(context.Background())
	require.NoError(t, err)
	require.Len(t, restaurants, 5)
	require.NotNil(t, restaurants[3].ID)
	assert.Equal(t, int64(4), *restaurants[3].ID)
	assert.Equal(t, "Tofu Town", restaurants[3].Name)
}

func TestRestaurantsClientErrors(t *testing.T) {
	srv := restaurantService(t, http.StatusInternalServerError, `{"error": "restaurant data not available"}`)
	_, err := NewRestaurantsClient(srv.URL).List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")

	srv = restaurantService(t, http.StatusOK, `not json`)
	_, err = NewRestaurantsClient(srv.URL).List(context.Background())
	require.Error(t, err)
}
