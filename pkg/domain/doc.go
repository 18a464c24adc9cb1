/*
Package domain contains the entity types that flow through the import pipeline.

It defines the bot's declared vocabulary (Domain), the dialogue training data
(StoryGraph and its events), and the NLU training data (TrainingData and
Message). This package is kept pure and free of I/O; parsing and persistence
live in the adapter packages.

# Key Entities

  - Domain: intents, entities, slots, responses, actions and forms of a bot.
  - StoryGraph / StoryStep: scripted example dialogues used as policy training data.
  - Event: a tagged variant observed inside a story step (user utterance,
    executed action, slot assignment).
  - TrainingData / Message: labeled NLU examples.

Domain, StoryGraph and TrainingData all expose an empty identity value and an
associative Merge, which the importer layers rely on to fold results from
multiple sources.
*/
package domain
