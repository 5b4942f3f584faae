// Package config loads dispatcher settings from TOML or YAML files and
// applies them to a kestrel.Dispatcher, optionally re-applying on file
// change for live reload.
//
//	settings, err := config.Load("dispatcher.toml")
//	if err != nil {
//	    return err
//	}
//	d := kestrel.New(settings.Options()...)
//
//	w, err := config.Watch("dispatcher.toml", func(s config.Settings, err error) {
//	    if err == nil {
//	        _ = s.Apply(d)
//	    }
//	})
//	defer w.Close()
//
// A missing file is not an error: Load returns the defaults, matching the
// behavior expected of optional configuration.
package config
