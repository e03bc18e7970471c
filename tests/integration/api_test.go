//go:build integration

package integration

import (
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	appcart "github.com/boilerparts/backend/internal/application/cart"
	"github.com/boilerparts/backend/internal/infrastructure/config"
	"github.com/boilerparts/backend/internal/interfaces/http/router"
	"github.com/boilerparts/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestAPI_ConcurrentAddToCart(t *testing.T) {
	db := NewTestDB(t)
	stack := testutil.NewStack(t, db.Database)

	engine, err := router.NewEngine(router.Deps{
		Config: &config.Config{
			HTTP: config.HTTPConfig{RequestTimeout: 10 * time.Second, MaxBodySize: 1 << 20},
		},
		Logger:    zaptest.NewLogger(t),
		Version:   "integration",
		Database:  db.Database,
		JWT:       stack.JWT,
		Blacklist: stack.Blacklist,
		Users:     stack.Users,
		Auth:      stack.Auth,
		Catalog:   stack.Catalog,
		Cart:      stack.Cart,
	})
	require.NoError(t, err)
	t.Cleanup(engine.Close)

	part := stack.SeedParts(t, testutil.Part("Heat exchanger", 12000, "hx.jpg"))[0]
	login := stack.RegisterAndLogin(t, "erin", "erin@example.com", "Password123")
	token := login.Token.AccessToken

	const adds = 10
	var wg sync.WaitGroup
	codes := make(chan int, adds)
	for range adds {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := testutil.Do(t, engine, testutil.Request{Method: http.MethodPost, Path: "/api/v1/shopping-cart/add",
				Token: token, Body: map[string]any{"username": "erin", "partId": part.ID}})
			codes <- w.Code
		}()
	}
	wg.Wait()
	close(codes)
	for code := range codes {
		assert.Equal(t, http.StatusCreated, code)
	}

	w := testutil.Do(t, engine, testutil.Request{Path: fmt.Sprintf("/api/v1/shopping-cart/%d", login.User.ID), Token: token})
	require.Equal(t, http.StatusOK, w.Code)
	items := testutil.DecodeData[[]appcart.CartItemResponse](t, w)
	require.Len(t, items, 1)
	assert.Equal(t, adds, items[0].Count)
	assert.Equal(t, int64(adds*12000), items[0].TotalPrice)

	w = testutil.Do(t, engine, testutil.Request{Path: "/health"})
	assert.Equal(t, http.StatusOK, w.Code)
}
