// Cinelex - Film Metadata Preparation and Lexicon Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelex

package models

// MovieRecord is one film after assembly.
type MovieRecord struct {
	WikipediaID string   `json:"wikipedia_id"`
	FreebaseID  string   `json:"freebase_id"`
	Name        string   `json:"name"`
	ReleaseYear *int     `json:"release_year,omitempty"`
	Revenue     *float64 `json:"revenue,omitempty"`
	Runtime     *float64 `json:"runtime,omitempty"`
	Languages   []string `json:"languages"`
	Countries   []string `json:"countries"`
	Genres      []string `json:"genres"`
	Summary     *string  `json:"summary,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
	Votes       *int64   `json:"votes,omitempty"`
}

// RawMovie is a movie.metadata.tsv row before normalization. Date and the
// three mapping columns are kept as read so duplicates can be detected on
// the source text.
type RawMovie struct {
	WikipediaID string
	FreebaseID  string
	Name        string
	ReleaseDate string
	Revenue     *float64
	Runtime     *float64
	Languages   string
	Countries   string
	Genres      string
}

// CharacterRecord is one character appearance.
type CharacterRecord struct {
	WikipediaID         string   `json:"wikipedia_id"`
	FreebaseID          string   `json:"freebase_id"`
	ReleaseYear         *int     `json:"release_year,omitempty"`
	CharacterName       string   `json:"character_name"`
	ActorBirthYear      *int     `json:"actor_birth_year,omitempty"`
	ActorGender         string   `json:"actor_gender"`
	ActorHeight         *float64 `json:"actor_height,omitempty"`
	ActorEthnicity      string   `json:"actor_ethnicity"`
	ActorName           string   `json:"actor_name"`
	ActorAge            *float64 `json:"actor_age,omitempty"`
	CharacterActorMapID string   `json:"character_actor_map_id"`
	CharacterID         string   `json:"character_id"`
	ActorID             string   `json:"actor_id"`
}

// RawCharacter is a character.metadata.tsv row with both dates unparsed.
type RawCharacter struct {
	CharacterRecord
	ReleaseDate    string
	ActorBirthDate string
}

// NameCluster maps a character name to a character/actor map ID.
type NameCluster struct {
	Name                string `json:"name"`
	CharacterActorMapID string `json:"character_actor_map_id"`
}

// PlotSummary pairs a Wikipedia movie ID with summary text. Text is nil when
// the source row had no text.
type PlotSummary struct {
	MovieID string  `json:"movie_id"`
	Text    *string `json:"summary,omitempty"`
}

// Rating is a title.ratings.tsv row.
type Rating struct {
	Tconst        string  `json:"tconst"`
	AverageRating float64 `json:"average_rating"`
	NumVotes      int64   `json:"num_votes"`
}

// Crosswalk links an IMDb title ID to a Freebase ID. FreebaseID is empty when
// the knowledge base has no Freebase link for the item.
type Crosswalk struct {
	Tconst     string `json:"tconst"`
	FreebaseID string `json:"freebase_id,omitempty"`
}

// Tables is the output of one assembly run.
type Tables struct {
	Movies       []MovieRecord     `json:"movies"`
	Characters   []CharacterRecord `json:"characters"`
	NameClusters []NameCluster     `json:"name_clusters"`
}
