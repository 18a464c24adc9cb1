/*
Package importers composes TrainingDataImporter sources into a single
consistent view.

  - CombinedImporter aggregates several sources, fanning out concurrently and
    folding the results.
  - E2EImporter derives extra training signal from the stories: end-to-end
    action names are injected into the domain and story turns become NLU
    examples. It caches the story fetch so the sources parse stories once.
  - NLUImporter and CoreImporter restrict a composed tree to one half of the
    contract.

A fully assembled tree is always an E2EImporter wrapping a CombinedImporter
wrapping the configured source adapters; see the package-root Load functions.
*/
package importers
