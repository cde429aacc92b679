package roster

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	rosterv1 "github.com/mcdev12/rosterbot/go/internal/api/roster/v1"
	"github.com/mcdev12/rosterbot/go/internal/api/roster/v1/rosterv1connect"
	"github.com/mcdev12/rosterbot/go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceAddAndDrop(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.createTeam(t, "1", "Foxes")
	f.createTeam(t, "2", "Bears")

	mux := http.NewServeMux()
	mux.Handle(rosterv1connect.NewRosterServiceHandler(NewService(f.roster)))
	server := httptest.NewServer(mux)
	defer server.Close()
	client := rosterv1connect.NewRosterServiceClient(server.Client(), server.URL)

	added, err := client.AddPlayer(ctx, &rosterv1.AddPlayerRequest{OwnerId: "1", PlayerId: "zim"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ZIM"}, added.Players)

	_, err = client.AddPlayer(ctx, &rosterv1.AddPlayerRequest{OwnerId: "2", PlayerId: "ZIM"})
	var nfa *models.NotFreeAgentError
	require.ErrorAs(t, err, &nfa)
	assert.Equal(t, models.OwnerID("1"), nfa.Owner)

	_, err = client.AddPlayer(ctx, &rosterv1.AddPlayerRequest{OwnerId: "2", PlayerId: "KEEF"})
	assert.ErrorIs(t, err, models.ErrUnknownPlayer)

	free, err := client.ListFreeAgents(ctx, &rosterv1.ListFreeAgentsRequest{})
	require.NoError(t, err)
	assert.Equal(t, []string{"GIR", "DIB", "GAZ"}, free.Players)

	dropped, err := client.DropPlayer(ctx, &rosterv1.DropPlayerRequest{OwnerId: "1", PlayerId: "ZIM"})
	require.NoError(t, err)
	assert.Empty(t, dropped.Players)

	_, err = client.DropPlayer(ctx, &rosterv1.DropPlayerRequest{OwnerId: "1", PlayerId: "ZIM"})
	assert.ErrorIs(t, err, models.ErrNotOnTeam)

	_, err = client.GetRosterPlayers(ctx, &rosterv1.GetRosterPlayersRequest{OwnerId: "7"})
	assert.ErrorIs(t, err, models.ErrNoTeam)
}
