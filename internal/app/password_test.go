package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/console-settings/internal/app/panel"
	"github.com/jsamuelsen11/console-settings/internal/app/slot"
	"github.com/jsamuelsen11/console-settings/internal/domain"
	"github.com/jsamuelsen11/console-settings/internal/domain/settings"
	"github.com/jsamuelsen11/console-settings/mocks"
)

func classic() settings.PasswordConfig {
	return settings.PasswordConfig{PasswordType: settings.StyleClassic}
}

func batteryHorse() settings.PasswordConfig {
	return settings.PasswordConfig{PasswordType: settings.StyleCorrectBatteryHorse}
}

func selectedStyle(v PasswordView) settings.PasswordStyle {
	for _, o := range v.Options {
		if o.Selected {
			return o.Style
		}
	}
	return ""
}

// loadedPassword returns a panel whose initial read returned Classic.
func loadedPassword(t *testing.T, client *mocks.MockSettingsClient, mode RefreshMode) *PasswordPanel {
	t.Helper()
	client.EXPECT().FetchPasswordConfig(mock.Anything).Return(classic(), nil).Once()

	opts := testOptions()
	opts.RefreshMode = mode
	p := NewPasswordPanel(client, opts)
	p.View(context.Background())
	require.Eventually(t, func() bool {
		return p.View(context.Background()).Phase == slot.Success
	}, waitFor, tick)
	return p
}

func TestPasswordPanel_View(t *testing.T) {
	t.Parallel()

	client := mocks.NewMockSettingsClient(t)
	p := loadedPassword(t, client, RefreshConcurrent)

	v := p.View(context.Background())
	assert.Equal(t, []PasswordOption{
		{Style: settings.StyleClassic, Selected: true},
		{Style: settings.StyleCorrectBatteryHorse, Selected: false},
	}, v.Options)
	assert.Nil(t, v.Banner)
}

func TestPasswordPanel_ViewBeforeLoad(t *testing.T) {
	t.Parallel()

	client := mocks.NewMockSettingsClient(t)
	gate := make(chan struct{})
	client.EXPECT().FetchPasswordConfig(mock.Anything).
		RunAndReturn(func(context.Context) (settings.PasswordConfig, error) {
			<-gate
			return classic(), nil
		}).Once()

	p := NewPasswordPanel(client, testOptions())
	v := p.View(context.Background())
	assert.Equal(t, slot.Fetching, v.Phase)
	assert.Len(t, v.Options, 2)
	assert.Empty(t, selectedStyle(v))

	close(gate)
	require.Eventually(t, func() bool {
		return selectedStyle(p.View(context.Background())) == settings.StyleClassic
	}, waitFor, tick)
}

func TestPasswordPanel_Select(t *testing.T) {
	t.Parallel()

	t.Run("writes style and shows success banner", func(t *testing.T) {
		t.Parallel()
		client := mocks.NewMockSettingsClient(t)
		p := loadedPassword(t, client, RefreshSequential)

		client.EXPECT().SubmitPasswordConfig(mock.Anything, batteryHorse()).
			Return(settings.Result{Message: "Successfully set the configuration"}, nil).Once()
		client.EXPECT().FetchPasswordConfig(mock.Anything).Return(batteryHorse(), nil).Once()

		sel, err := p.Select(context.Background(), settings.StyleCorrectBatteryHorse)
		require.NoError(t, err)
		require.NoError(t, sel.Write.Wait(context.Background()))
		<-sel.Refreshed

		v := p.View(context.Background())
		assert.Equal(t, settings.StyleCorrectBatteryHorse, selectedStyle(v))
		require.NotNil(t, v.Banner)
		assert.Equal(t, panel.ToneSuccess, v.Banner.Tone)
		assert.Equal(t, "Successfully set the configuration", v.Banner.Message)
	})

	t.Run("failed write shows fixed error text", func(t *testing.T) {
		t.Parallel()
		client := mocks.NewMockSettingsClient(t)
		p := loadedPassword(t, client, RefreshSequential)

		client.EXPECT().SubmitPasswordConfig(mock.Anything, batteryHorse()).
			Return(settings.Result{}, errors.New("500 internal server error")).Once()
		client.EXPECT().FetchPasswordConfig(mock.Anything).Return(classic(), nil).Once()

		sel, err := p.Select(context.Background(), settings.StyleCorrectBatteryHorse)
		require.NoError(t, err)
		require.Error(t, sel.Write.Wait(context.Background()))
		<-sel.Refreshed

		v := p.View(context.Background())
		require.NotNil(t, v.Banner)
		assert.True(t, v.Banner.IsError())
		assert.Equal(t, "Error setting password style", v.Banner.Message)

		// The banner stays until the next write cycle.
		for range 3 {
			assert.Equal(t, MsgPasswordFailed, p.View(context.Background()).Banner.Message)
		}
	})

	t.Run("banner shows loading while writing", func(t *testing.T) {
		t.Parallel()
		client := mocks.NewMockSettingsClient(t)
		p := loadedPassword(t, client, RefreshSequential)

		gate := make(chan struct{})
		client.EXPECT().SubmitPasswordConfig(mock.Anything, batteryHorse()).
			RunAndReturn(func(context.Context, settings.PasswordConfig) (settings.Result, error) {
				<-gate
				return settings.Result{Message: "ok"}, nil
			}).Once()
		client.EXPECT().FetchPasswordConfig(mock.Anything).Return(batteryHorse(), nil).Once()

		sel, err := p.Select(context.Background(), settings.StyleCorrectBatteryHorse)
		require.NoError(t, err)

		v := p.View(context.Background())
		require.NotNil(t, v.Banner)
		assert.True(t, v.Banner.Loading)
		assert.Empty(t, v.Banner.Message)
		assert.False(t, v.Banner.IsError())

		close(gate)
		<-sel.Refreshed
		v = p.View(context.Background())
		require.NotNil(t, v.Banner)
		assert.False(t, v.Banner.Loading)
		assert.Equal(t, "ok", v.Banner.Message)
	})

	t.Run("rejects unknown style", func(t *testing.T) {
		t.Parallel()
		client := mocks.NewMockSettingsClient(t)
		p := loadedPassword(t, client, RefreshConcurrent)

		_, err := p.Select(context.Background(), "Diceware")
		require.ErrorIs(t, err, domain.ErrValidation)

		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Contains(t, ve.Fields, "passwordType")
		assert.Nil(t, p.View(context.Background()).Banner, "rejected select must not reveal the banner")
	})
}

func TestPasswordPanel_ConcurrentRefreshRace(t *testing.T) {
	t.Parallel()

	client := mocks.NewMockSettingsClient(t)
	p := loadedPassword(t, client, RefreshConcurrent)

	writeGate := make(chan struct{})
	client.EXPECT().SubmitPasswordConfig(mock.Anything, batteryHorse()).
		RunAndReturn(func(context.Context, settings.PasswordConfig) (settings.Result, error) {
			<-writeGate
			return settings.Result{Message: "ok"}, nil
		}).Once()
	// The re-read lands before the write commits and still sees the old style.
	client.EXPECT().FetchPasswordConfig(mock.Anything).Return(classic(), nil).Once()

	sel, err := p.Select(context.Background(), settings.StyleCorrectBatteryHorse)
	require.NoError(t, err)
	<-sel.Refreshed

	assert.Equal(t, slot.Success, p.View(context.Background()).Phase)
	assert.Equal(t, settings.StyleClassic, selectedStyle(p.View(context.Background())),
		"old selection is shown until the next read")

	close(writeGate)
	require.NoError(t, sel.Write.Wait(context.Background()))
}

func TestPasswordPanel_SequentialRefreshWaitsForWrite(t *testing.T) {
	t.Parallel()

	client := mocks.NewMockSettingsClient(t)
	p := loadedPassword(t, client, RefreshSequential)

	writeGate := make(chan struct{})
	client.EXPECT().SubmitPasswordConfig(mock.Anything, batteryHorse()).
		RunAndReturn(func(context.Context, settings.PasswordConfig) (settings.Result, error) {
			<-writeGate
			return settings.Result{Message: "ok"}, nil
		}).Once()
	client.EXPECT().FetchPasswordConfig(mock.Anything).Return(batteryHorse(), nil).Once()

	sel, err := p.Select(context.Background(), settings.StyleCorrectBatteryHorse)
	require.NoError(t, err)

	select {
	case <-sel.Refreshed:
		t.Fatal("re-read issued before the write settled")
	default:
	}
	assert.Equal(t, uint64(1), p.panel.Loader().State().Call)

	close(writeGate)
	<-sel.Refreshed
	assert.Equal(t, settings.StyleCorrectBatteryHorse, selectedStyle(p.View(context.Background())))
}

func TestPasswordPanel_SequentialBackToBackSelections(t *testing.T) {
	t.Parallel()

	client := mocks.NewMockSettingsClient(t)
	p := loadedPassword(t, client, RefreshSequential)

	var stored atomic.Value
	stored.Store(settings.StyleClassic)
	client.EXPECT().SubmitPasswordConfig(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, cfg settings.PasswordConfig) (settings.Result, error) {
			stored.Store(cfg.PasswordType)
			return settings.Result{Message: "ok"}, nil
		}).Times(2)

	// Each re-read captures the stored style when it reaches the backend and
	// then waits for its gate, so the test decides the arrival order.
	var reads atomic.Int32
	gates := []chan struct{}{make(chan struct{}), make(chan struct{})}
	client.EXPECT().FetchPasswordConfig(mock.Anything).
		RunAndReturn(func(context.Context) (settings.PasswordConfig, error) {
			n := reads.Add(1)
			style := stored.Load().(settings.PasswordStyle)
			<-gates[n-1]
			return settings.PasswordConfig{PasswordType: style}, nil
		}).Times(2)

	first, err := p.Select(context.Background(), settings.StyleCorrectBatteryHorse)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return reads.Load() == 1 }, waitFor, tick)

	second, err := p.Select(context.Background(), settings.StyleClassic)
	require.NoError(t, err)
	require.NoError(t, second.Write.Wait(context.Background()))
	require.Eventually(t, func() bool { return reads.Load() == 2 }, waitFor, tick,
		"second selection must re-read after its own write")

	close(gates[0])
	<-first.Refreshed
	close(gates[1])
	<-second.Refreshed

	assert.Equal(t, settings.StyleClassic, selectedStyle(p.View(context.Background())))
}
