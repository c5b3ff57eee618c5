package app

import (
	"context"

	"github.com/schrockblock/recipes/internal/prefs"
	"github.com/schrockblock/recipes/internal/ui"
)

// Run boots the recipe browser until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	env, err := NewEnv(opts)
	if err != nil {
		return err
	}
	defer env.Close()

	userPrefs := prefs.Load(opts.PrefsPath)
	env.Logger.Info("browser starting", "category", env.Category, "theme", userPrefs.Theme)

	err = ui.Run(ui.Options{
		Context:       ctx,
		Catalog:       env.CatalogOptions(ctx),
		ThemeName:     userPrefs.Theme,
		ShowImageInfo: userPrefs.ShowImage,
		PrefsPath:     opts.PrefsPath,
		Logger:        env.Logger,
	})
	if err != nil {
		env.Logger.Error("browser stopped", "error", err)
		return err
	}
	env.Logger.Info("browser stopped")
	return nil
}
