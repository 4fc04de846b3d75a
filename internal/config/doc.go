// Package config loads minivue.yaml, the optional runtime configuration
// file.
//
// # Configuration File Structure
//
//	devMode: true
//	reentrancy: defer   # or panic
//	logLevel: debug
//	metrics:
//	  enabled: true
//	  namespace: myapp
//	  subsystem: ui
//	tracerName: myapp
//
// Missing fields take their defaults; unknown fields are an error.
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Reentrancy:", cfg.ReentrancyPolicy())
package config
