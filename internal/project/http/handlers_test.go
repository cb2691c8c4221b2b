package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protoboard/protoboard-backend/internal/project/repository"
	"github.com/protoboard/protoboard-backend/internal/project/service"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *miniredis.Miniredis, *redis.Client) {
	gin.SetMode(gin.TestMode)

	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	require.NoError(t, client.Ping(context.Background()).Err())

	svc := service.NewProjectService(repository.NewProjectRepository(client))

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("firebase_uid", "user123")
		c.Next()
	})
	Register(r.Group("/api/v1"), svc)
	return r, mr, client
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed map[string]any
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	}
	return w, parsed
}

func createProject(t *testing.T, r *gin.Engine) (string, string) {
	t.Helper()
	w, body := doJSON(t, r, http.MethodPost, "/api/v1/projects", gin.H{"name": "Demo"})
	require.Equal(t, http.StatusCreated, w.Code)
	project := body["project"].(map[string]any)
	screens := project["screens"].([]any)
	return project["id"].(string), screens[0].(map[string]any)["id"].(string)
}

func TestProjectEndpoints(t *testing.T) {
	r, mr, client := setupTestRouter(t)
	defer mr.Close()
	defer client.Close()

	t.Run("create rejects an empty name", func(t *testing.T) {
		w, _ := doJSON(t, r, http.MethodPost, "/api/v1/projects", gin.H{"name": "   "})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("get unknown project is a 404", func(t *testing.T) {
		w, body := doJSON(t, r, http.MethodGet, "/api/v1/projects/pb-00000-0000", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, false, body["ok"])
	})

	t.Run("create, patch, list", func(t *testing.T) {
		id, _ := createProject(t, r)

		w, body := doJSON(t, r, http.MethodPatch, "/api/v1/projects/"+id, gin.H{"name": "Renamed"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Renamed", body["project"].(map[string]any)["name"])

		w, body = doJSON(t, r, http.MethodGet, "/api/v1/projects", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, body["projects"])
	})
}

func TestElementEndpoints(t *testing.T) {
	r, mr, client := setupTestRouter(t)
	defer mr.Close()
	defer client.Close()

	id, screenID := createProject(t, r)
	base := fmt.Sprintf("/api/v1/projects/%s/screens/%s/elements", id, screenID)

	t.Run("add element", func(t *testing.T) {
		w, body := doJSON(t, r, http.MethodPost, base, gin.H{"type": "button", "x": 10, "y": 20})
		require.Equal(t, http.StatusCreated, w.Code)
		assert.NotEmpty(t, body["element_id"])
	})

	t.Run("unknown element type rejected", func(t *testing.T) {
		w, _ := doJSON(t, r, http.MethodPost, base, gin.H{"type": "hologram"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("duplicate trigger maps to 409", func(t *testing.T) {
		_, body := doJSON(t, r, http.MethodPost, base, gin.H{"type": "button", "x": 0, "y": 0})
		elementID := body["element_id"].(string)

		w, _ := doJSON(t, r, http.MethodPost, base+"/"+elementID+"/interactions", gin.H{})
		require.Equal(t, http.StatusCreated, w.Code)
		w, _ = doJSON(t, r, http.MethodPost, base+"/"+elementID+"/interactions", gin.H{})
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestBulkDeleteFlow(t *testing.T) {
	r, mr, client := setupTestRouter(t)
	defer mr.Close()
	defer client.Close()

	id, screenID := createProject(t, r)
	base := fmt.Sprintf("/api/v1/projects/%s/screens/%s/elements", id, screenID)

	var ids []string
	for i := 0; i < 2; i++ {
		_, body := doJSON(t, r, http.MethodPost, base, gin.H{"type": "text", "x": float64(i * 50)})
		ids = append(ids, body["element_id"].(string))
	}

	t.Run("plan with an unsupported kind is a bad request", func(t *testing.T) {
		w, _ := doJSON(t, r, http.MethodPost, "/api/v1/projects/"+id+"/delete-plan", gin.H{
			"kind": "assets", "ids": ids,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("bulk delete without confirm token is a conflict", func(t *testing.T) {
		w, _ := doJSON(t, r, http.MethodDelete, base, gin.H{"ids": ids})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("plan then delete with the issued token", func(t *testing.T) {
		w, body := doJSON(t, r, http.MethodPost, "/api/v1/projects/"+id+"/delete-plan", gin.H{
			"kind": "elements", "screen_id": screenID, "ids": ids,
		})
		require.Equal(t, http.StatusOK, w.Code)
		intent := body["intent"].(map[string]any)
		token := intent["confirm_token"].(string)
		assert.Equal(t, float64(2), intent["element_count"])

		w, body = doJSON(t, r, http.MethodDelete, base, gin.H{"ids": ids, "confirm_token": token})
		require.Equal(t, http.StatusOK, w.Code)
		project := body["project"].(map[string]any)
		screens := project["screens"].([]any)
		assert.Empty(t, screens[0].(map[string]any)["elements"])
	})
}

func TestSelectionEndpoint(t *testing.T) {
	r, mr, client := setupTestRouter(t)
	defer mr.Close()
	defer client.Close()

	t.Run("bulk elements win over screens", func(t *testing.T) {
		w, body := doJSON(t, r, http.MethodPost, "/api/v1/selection/resolve", gin.H{
			"element_ids": []string{"a", "b"},
			"screen_ids":  []string{"s1"},
		})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "bulk_elements", body["surface"])
		assert.Contains(t, body["bulk_actions"], "group")
	})

	t.Run("empty selection falls back to the active screen", func(t *testing.T) {
		w, body := doJSON(t, r, http.MethodPost, "/api/v1/selection/resolve", gin.H{})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "active_screen", body["surface"])
		assert.Nil(t, body["bulk_actions"])
	})
}

func TestScreenEndpoints(t *testing.T) {
	r, mr, client := setupTestRouter(t)
	defer mr.Close()
	defer client.Close()

	id, homeID := createProject(t, r)

	t.Run("add screen and switch focus", func(t *testing.T) {
		w, body := doJSON(t, r, http.MethodPost, "/api/v1/projects/"+id+"/screens", gin.H{"name": "Detail"})
		require.Equal(t, http.StatusCreated, w.Code)
		screenID := body["screen_id"].(string)
		require.NotEqual(t, homeID, screenID)

		w, body = doJSON(t, r, http.MethodPut, "/api/v1/projects/"+id+"/active-screen", gin.H{"screen_id": screenID})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, screenID, body["project"].(map[string]any)["activeScreenId"])
	})

	t.Run("deleting the last screens leaves a fresh home", func(t *testing.T) {
		w, body := doJSON(t, r, http.MethodGet, "/api/v1/projects/"+id, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var ids []string
		for _, s := range body["project"].(map[string]any)["screens"].([]any) {
			ids = append(ids, s.(map[string]any)["id"].(string))
		}
		require.Len(t, ids, 2)

		w, body = doJSON(t, r, http.MethodPost, "/api/v1/projects/"+id+"/delete-plan", gin.H{
			"kind": "screens", "ids": ids,
		})
		require.Equal(t, http.StatusOK, w.Code)
		token := body["intent"].(map[string]any)["confirm_token"].(string)

		w, body = doJSON(t, r, http.MethodDelete, "/api/v1/projects/"+id+"/screens", gin.H{
			"ids": ids, "confirm_token": token,
		})
		require.Equal(t, http.StatusOK, w.Code)
		screens := body["project"].(map[string]any)["screens"].([]any)
		require.Len(t, screens, 1)
		assert.Equal(t, "Home", screens[0].(map[string]any)["name"])
		assert.NotContains(t, ids, screens[0].(map[string]any)["id"])
	})
}

func TestNavigationEndpoint(t *testing.T) {
	r, mr, client := setupTestRouter(t)
	defer mr.Close()
	defer client.Close()

	id, homeID := createProject(t, r)
	_, body := doJSON(t, r, http.MethodPost, "/api/v1/projects/"+id+"/screens", gin.H{"name": "Detail"})
	detailID := body["screen_id"].(string)

	base := fmt.Sprintf("/api/v1/projects/%s/screens/%s/elements", id, homeID)
	_, body = doJSON(t, r, http.MethodPost, base, gin.H{"type": "button"})
	elementID := body["element_id"].(string)
	w, _ := doJSON(t, r, http.MethodPost, base+"/"+elementID+"/interactions", gin.H{})
	require.Equal(t, http.StatusCreated, w.Code)

	w, body = doJSON(t, r, http.MethodGet, "/api/v1/projects/"+id+"/navigation", nil)
	require.Equal(t, http.StatusOK, w.Code)
	graph := body["graph"].(map[string]any)
	assert.Equal(t, homeID, graph["initial"])
	arcs := graph["arcs"].([]any)
	require.Len(t, arcs, 1)
	assert.Equal(t, detailID, arcs[0].(map[string]any)["to"])
}
