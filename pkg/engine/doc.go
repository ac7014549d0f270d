// Package engine wires the live document pipeline. Open loads a template,
// extracts its spans, resolves them to questions and builds the
// questionnaire once; Session.Render then runs a fresh decide and assemble
// pass for every answer change.
//
//	eng := engine.New(engine.WithLogger(logger))
//	session, err := eng.Open(ctx, engine.Request{Source: document.SourceFromFile("agreement.html")})
//	result, err := session.Render(ctx, engine.RenderRequest{Answers: store})
package engine
