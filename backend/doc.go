// Package backend declares the Backend contract: the narrow,
// stateless capability record a pluggable compilation stage implements to
// turn Glue-composed source (or auto-output JSON) into rendered artifacts.
// Concrete backends live in their own packages (e.g.
// [quillmark/backend/txtbackend]); this package only fixes the interface
// and the shared value types ([Format], [Artifact], [RenderResult],
// [Options]) that both [quillmark/workflow] and every Backend implementation
// depend on.
package backend
