package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/avaldezm/task-tracker/internal/constants"
	"github.com/avaldezm/task-tracker/internal/database"
	"github.com/avaldezm/task-tracker/internal/middleware"
	"github.com/avaldezm/task-tracker/internal/oauth"
	"github.com/avaldezm/task-tracker/internal/repository"
	"github.com/avaldezm/task-tracker/internal/services"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/avaldezm/task-tracker/internal/models"
)

type testEnv struct {
	db          *gorm.DB
	router      *gin.Engine
	userRepo    repository.UserRepository
	taskRepo    repository.TaskRepository
	authService *services.AuthService
	taskService *services.TaskService
}

// setupTestEnv builds an in-memory application mirroring the wiring in
// cmd/server, with a cookie session store instead of Redis. Any providers
// passed in are registered for the OAuth routes.
func setupTestEnv(t *testing.T, providers ...oauth.Provider) *testEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Task{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	authService := services.NewAuthService(userRepo)
	taskService := services.NewTaskService(taskRepo)

	registry := oauth.Registry{}
	for _, p := range providers {
		registry[p.Name()] = p
	}
	authHandler := NewAuthHandler(authService, registry)
	taskHandler := NewTaskHandler(taskService)

	r := gin.New()
	r.LoadHTMLGlob("../../templates/*.html")
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	r.GET("/register", authHandler.ShowRegister)
	r.POST("/register", authHandler.Register)
	r.GET("/login", authHandler.ShowLogin)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", middleware.RequireLogin(), authHandler.Logout)
	r.GET("/login/:provider", authHandler.OAuthLogin)
	r.GET("/login/:provider/callback", authHandler.OAuthCallback)

	tasks := r.Group("/tasks")
	tasks.Use(middleware.RequireLogin())
	{
		tasks.GET("/", taskHandler.Index)
		tasks.POST("/create_task", taskHandler.CreateTask)
		tasks.POST("/update_task/:id", middleware.RequireTaskOwner(taskRepo), taskHandler.UpdateTask)
		tasks.POST("/delete_task/:id", middleware.RequireTaskOwner(taskRepo), taskHandler.DeleteTask)
		tasks.GET("/view_task/:id", middleware.RequireTaskOwner(taskRepo), taskHandler.ViewTask)
	}
	r.GET("/tasks/api/tasks", middleware.RequireAuth(), taskHandler.ListTasksJSON)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return &testEnv{
		db:          db,
		router:      r,
		userRepo:    userRepo,
		taskRepo:    taskRepo,
		authService: authService,
		taskService: taskService,
	}
}

// postForm performs a form POST with the given cookies.
func (e *testEnv) postForm(path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// get performs a GET with the given cookies.
func (e *testEnv) get(path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// mergeCookies overlays Set-Cookie response cookies onto an existing jar,
// replacing cookies with the same name.
func mergeCookies(jar []*http.Cookie, resp *httptest.ResponseRecorder) []*http.Cookie {
	updated := resp.Result().Cookies()
	merged := make([]*http.Cookie, 0, len(jar)+len(updated))
	for _, c := range jar {
		replaced := false
		for _, u := range updated {
			if u.Name == c.Name {
				replaced = true
				break
			}
		}
		if !replaced {
			merged = append(merged, c)
		}
	}
	return append(merged, updated...)
}

// registerAndLogin creates an account and returns the session cookies.
func (e *testEnv) registerAndLogin(t *testing.T, username, email, password string) []*http.Cookie {
	t.Helper()

	_, err := e.authService.Register(services.RegisterInput{
		Username: username,
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)

	w := e.postForm("/login", url.Values{
		"username": {username},
		"password": {password},
	}, nil)
	require.Equal(t, http.StatusFound, w.Code)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies, "expected session cookie to be set")
	return cookies
}
