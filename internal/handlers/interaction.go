package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/tpc3/MisskeyIntegrate/internal/discord"
	"github.com/tpc3/MisskeyIntegrate/internal/metrics"
)

// Command path the dispatcher recognizes: /misskey ads create.
const (
	rootCommand  = "misskey"
	adsGroup     = "ads"
	createAction = "create"
)

// Interactions handles the chat platform's webhook callback. Signature
// verification has already happened in middleware by the time this runs.
func (h *Handler) Interactions(w http.ResponseWriter, r *http.Request) {
	var interaction discord.Interaction
	if err := json.NewDecoder(r.Body).Decode(&interaction); err != nil {
		h.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	switch interaction.Type {
	case discord.InteractionPing:
		metrics.InteractionsTotal.WithLabelValues("ping").Inc()
		h.JSON(w, http.StatusOK, discord.Pong())
		return
	case discord.InteractionApplicationCommand:
		if resp, ok := h.dispatchCommand(r.Context(), &interaction); ok {
			h.JSON(w, http.StatusOK, resp)
			return
		}
	}

	// Unrecognized interactions and commands get a catch-all reply, not an
	// error, so unknown subcommands stay forward-compatible.
	metrics.InteractionsTotal.WithLabelValues("default").Inc()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("Hello, world"))
}

// dispatchCommand routes a command interaction to the one supported action.
// Every level of the option tree is looked up safely; any shape mismatch
// reports no match instead of faulting.
func (h *Handler) dispatchCommand(ctx context.Context, in *discord.Interaction) (discord.Response, bool) {
	if in.Data.Name != rootCommand {
		return discord.Response{}, false
	}
	if len(in.Data.Options) != 1 {
		return discord.Response{}, false
	}

	group := in.Data.Options[0]
	if group.Name != adsGroup {
		return discord.Response{}, false
	}

	action, ok := group.Find(createAction)
	if !ok {
		return discord.Response{}, false
	}

	return h.createAd(ctx, in, action.Options), true
}
