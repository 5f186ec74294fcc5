package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"medialane/internal/models"
	"medialane/internal/notifications"
	"medialane/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModerationPublishesOwnerEvent(t *testing.T) {
	ts := newTestServer(t)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	ts.srv.notifier = notifications.NewNotifier(rdb)

	testutil.CreateCategory(t, ts.db, models.CategoryEducation)
	owner, creator := ts.login(t, "creator", models.RoleVideoClient)
	_, admin := ts.login(t, "admin", models.RoleAdmin)
	video := createVideo(t, ts, creator, "Watch Me")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	sub := rdb.Subscribe(ctx, notifications.UserChannel(owner.ID))
	defer func() { _ = sub.Close() }()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	status, _ := ts.do(t, http.MethodPut, fmt.Sprintf("/api/admin/videos/%d/disable", video.ID), admin, nil,
		"X-Confirm-Password", testutil.Password)
	require.Equal(t, http.StatusOK, status)

	msg, err := sub.ReceiveMessage(ctx)
	require.NoError(t, err)
	var event notifications.Event
	require.NoError(t, json.Unmarshal([]byte(msg.Payload), &event))
	assert.Equal(t, notifications.VideoDisabled, event.Type)
	assert.Equal(t, video.ID, event.ResourceID)
	assert.Equal(t, video.Slug, event.Slug)
}

func TestModerationSucceedsWhenRedisIsDown(t *testing.T) {
	ts := newTestServer(t)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })
	ts.srv.notifier = notifications.NewNotifier(rdb)
	mr.Close()

	target, _ := ts.login(t, "target", models.RoleViewerClient)
	_, super := ts.login(t, "root", models.RoleSuperAdmin)

	status, env := ts.do(t, http.MethodPut, fmt.Sprintf("/api/admin/users/%d/block", target.ID), super, nil,
		"X-Confirm-Password", testutil.Password)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "USER_BLOCKED", env.Code)
}
