package fantasyteam

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	fantasyteamv1 "github.com/mcdev12/rosterbot/go/internal/api/fantasyteam/v1"
	"github.com/mcdev12/rosterbot/go/internal/api/fantasyteam/v1/fantasyteamv1connect"
	"github.com/mcdev12/rosterbot/go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *fantasyteamv1connect.FantasyTeamServiceClient {
	t.Helper()
	app, _ := newTestApp(t)

	mux := http.NewServeMux()
	mux.Handle(fantasyteamv1connect.NewFantasyTeamServiceHandler(NewService(app)))
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return fantasyteamv1connect.NewFantasyTeamServiceClient(server.Client(), server.URL)
}

func TestServiceRoundTrip(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	created, err := client.CreateFantasyTeam(ctx, &fantasyteamv1.CreateFantasyTeamRequest{OwnerId: "1", Name: "Foxes"})
	require.NoError(t, err)
	assert.Equal(t, "1", created.FantasyTeam.OwnerId)
	assert.Empty(t, created.FantasyTeam.Players)

	_, err = client.CreateFantasyTeam(ctx, &fantasyteamv1.CreateFantasyTeamRequest{OwnerId: "1", Name: "Again"})
	assert.ErrorIs(t, err, models.ErrAlreadyHasTeam)

	listed, err := client.ListFantasyTeams(ctx, &fantasyteamv1.ListFantasyTeamsRequest{})
	require.NoError(t, err)
	require.Len(t, listed.FantasyTeams, 1)
	assert.Equal(t, "Foxes", listed.FantasyTeams[0].Name)

	deleted, err := client.DeleteFantasyTeam(ctx, &fantasyteamv1.DeleteFantasyTeamRequest{OwnerId: "1"})
	require.NoError(t, err)
	assert.Equal(t, "Foxes", deleted.FantasyTeam.Name)

	_, err = client.GetFantasyTeam(ctx, &fantasyteamv1.GetFantasyTeamRequest{OwnerId: "1"})
	assert.ErrorIs(t, err, models.ErrNoTeam)
}

func TestServiceInvalidArgument(t *testing.T) {
	client := newTestClient(t)

	_, err := client.CreateFantasyTeam(context.Background(), &fantasyteamv1.CreateFantasyTeamRequest{OwnerId: "1"})
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
}
