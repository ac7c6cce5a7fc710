// Package engine composes the endpoint mocks into one mocked API.
//
// OpenAIMock owns a shared StateStore, one mock per resource and the
// ServeMux they register on. It can be used three ways:
//
//	m, _ := engine.New(engine.Config{})
//
//	// In-process, through the HTTP client the code under test uses.
//	client := m.HTTPClient()
//
//	// As a plain http.Handler, e.g. with httptest.NewServer(m).
//	srv := httptest.NewServer(m)
//
//	// On a real listener.
//	s := engine.NewServer(m, "127.0.0.1:4300")
//	_ = s.Start()
//	defer s.Stop(context.Background())
//
// Routes are matched on method and path only, so the same mock serves
// requests addressed to the real API host and to a local listener.
package engine
