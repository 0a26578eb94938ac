// Package ngdp drives Angular-style web UIs through end-to-end scenarios.
//
// Elements are located the way Angular templates describe them (by model,
// options, repeater, css, id or name) and manipulated through small Actions
// that run against a browser Driver. Drivers are provided for chromedp
// (package cdpdriver) and playwright (package pwdriver).
//
// A scenario is a list of Actions, usually grouped into named Steps, run by a
// Runner:
//
//	r := ngdp.NewRunner(d, ngdp.WithLogf(log.Printf))
//	err := r.Run(ctx,
//		ngdp.Navigate("http://localhost:9080/"),
//		ngdp.SendKeys(ngdp.ByModel("credentials.username"), "bellini"),
//		ngdp.Click(ngdp.ByID("login-btn")),
//	)
package ngdp
