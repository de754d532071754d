// Package wasm is a loader backend for bundles that ship WebAssembly modules
// instead of native shared libraries.
//
// It plugs into turnkey.LoadWithConfig like the native loader:
//
//	loader, err := wasm.New(ctx)
//	if err != nil {
//	    return err
//	}
//	defer loader.Close(ctx)
//
//	_, err = turnkey.LoadWithConfig(ctx, "com/example/plugin", provider, &turnkey.Config{
//	    Loader: loader,
//	})
//
// Modules are compiled and instantiated with wazero, one shared runtime per
// Loader.
package wasm
