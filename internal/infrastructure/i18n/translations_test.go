package i18n

import (
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"tablemate/internal/domain"
)

func newTestTranslator() *Translator {
	return NewTranslator("fr", slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestTranslator_T(t *testing.T) {
	tr := newTestTranslator()

	t.Run("should render the requested locale", func(t *testing.T) {
		req := require.New(t)
		req.Equal("In progress", tr.T("en", "status.in_progress", nil))
		req.Equal("En cours", tr.T("fr", "status.in_progress", nil))
	})

	t.Run("should fall back to the default locale", func(t *testing.T) {
		req := require.New(t)
		req.Equal("En cours", tr.T("", "status.in_progress", nil))
		req.Equal("En cours", tr.T("de", "status.in_progress", nil))
	})

	t.Run("should fill template data", func(t *testing.T) {
		msg := tr.T("en", "notify.cancelled", map[string]any{"Title": "Brunch", "Reason": "rain"})
		require.Equal(t, "❌ Brunch was cancelled: rain", msg)
	})

	t.Run("should return the key when nothing matches", func(t *testing.T) {
		require.Equal(t, "missing.key", tr.T("en", "missing.key", nil))
	})
}

func TestBundles(t *testing.T) {
	t.Run("should label every status and describe every error in both locales", func(t *testing.T) {
		tr := newTestTranslator()
		keys := []string{"error.unknown", "result.applied", "result.noop"}
		for _, s := range []domain.Status{
			domain.StatusOpen, domain.StatusConfirmed, domain.StatusInProgress,
			domain.StatusFinished, domain.StatusCompleted, domain.StatusCancelled,
		} {
			keys = append(keys, "status."+s.String())
		}
		for _, err := range []error{
			domain.ErrEventNotFound, domain.ErrInvalidEvent, domain.ErrInvalidSchedule,
			domain.ErrInvalidTransition, domain.ErrConflict, domain.ErrPersistenceUnavailable,
			domain.ErrNotAuthorized, domain.ErrCancelReasonRequired, domain.ErrEventNotActive,
			domain.ErrParticipationNotFound, domain.ErrParticipationExists,
			domain.ErrParticipationNotPending, domain.ErrCreatorCannotApply, domain.ErrPresenceNotAllowed,
		} {
			keys = append(keys, "error."+domain.Code(err))
		}
		for _, locale := range []string{"en", "fr"} {
			for _, key := range keys {
				require.NotEqual(t, key, tr.T(locale, key, map[string]any{"Status": "x"}), "%s/%s", locale, key)
			}
		}
	})
}

func TestErrorMessage(t *testing.T) {
	tr := newTestTranslator()
	req := require.New(t)

	req.Empty(ErrorMessage(tr, "en", nil))
	req.Equal("Only the organiser can do this.", ErrorMessage(tr, "en", fmt.Errorf("cancel: %w", domain.ErrNotAuthorized)))
	req.Equal("Something went wrong.", ErrorMessage(tr, "en", fmt.Errorf("boom")))
	req.Equal("Annulé", StatusLabel(tr, "fr", domain.StatusCancelled))
}
