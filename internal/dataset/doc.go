// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

/*
Package dataset loads the movie catalog and rating history that feed the
recommendation engine.

# Sources

Two loaders implement the Loader interface:

  - DuckDBLoader reads MovieLens-style CSV files through DuckDB's
    read_csv_auto table function.
  - PostgresLoader queries the movies, ratings and movie_sentiment tables
    through a pgx connection pool.

Both fan out independent reads with errgroup and merge the results into a
single Dataset. Rows that cannot be parsed are skipped and logged; semantic
validation (duplicate ids, out-of-scale ratings) is left to the engine, which
reports it in its LoadReport.

# Review Sentiment

When a reviews file is configured, movies without an explicit sentiment score
receive one from SentimentScorer, a small lexicon scorer that maps each review
to a polarity in [-1, 1] and the per-movie mean into [0, 1].

# Snapshots

SnapshotStore persists every successfully loaded dataset as a gzip-compressed
gob file with a SHA-256 checksum. SnapshotLoader wraps a source loader and
falls back to the newest snapshot when the source is unavailable, so a
restart during a database outage still serves the last known catalog.
*/
package dataset
