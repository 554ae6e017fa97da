// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package models

import "time"

// SeedCatalog returns the launch catalog with zeroed stats and both
// timestamps set to now. A fresh slice is returned on every call.
func SeedCatalog(now time.Time) []Movie {
	seed := []Movie{
		{
			MovieID:     "movie_001",
			Title:       "The Quantum Paradox",
			Description: "A mind-bending sci-fi thriller exploring parallel universes and quantum mechanics.",
			Genre:       "Sci-Fi",
			ReleaseYear: 2024,
			Director:    "Sarah Mitchell",
			ImageURL:    "https://image.tmdb.org/t/p/w500/8Gxv8gSFCU0XGDykEGv7zR1n2ua.jpg",
		},
		{
			MovieID:     "movie_002",
			Title:       "Echoes of Tomorrow",
			Description: "A heartwarming drama about family, time travel, and second chances.",
			Genre:       "Drama",
			ReleaseYear: 2025,
			Director:    "James Chen",
			ImageURL:    "https://image.tmdb.org/t/p/w500/kXfqcdQKsToO0OUXHcrrNCHDBzO.jpg",
		},
		{
			MovieID:     "movie_003",
			Title:       "Shadow Protocol",
			Description: "An action-packed espionage thriller with explosive sequences and plot twists.",
			Genre:       "Action",
			ReleaseYear: 2025,
			Director:    "Marcus Rodriguez",
			ImageURL:    "https://image.tmdb.org/t/p/w500/7WsyChQLEftFiDOVTGkv3hFpyyt.jpg",
		},
		{
			MovieID:     "movie_004",
			Title:       "The Last Symphony",
			Description: "A biographical drama about a legendary composer's final masterpiece.",
			Genre:       "Drama",
			ReleaseYear: 2024,
			Director:    "Elena Volkov",
			ImageURL:    "https://image.tmdb.org/t/p/w500/qNBAXBIQlnOThrVvA6mA2B5ggV6.jpg",
		},
		{
			MovieID:     "movie_005",
			Title:       "Neon City",
			Description: "A cyberpunk adventure set in a dystopian future with stunning visuals.",
			Genre:       "Sci-Fi",
			ReleaseYear: 2026,
			Director:    "Kenji Tanaka",
			ImageURL:    "https://image.tmdb.org/t/p/w500/pwGmXVKUgKN13psUjlhC9zBcq1o.jpg",
		},
		{
			MovieID:     "movie_006",
			Title:       "Desert Storm",
			Description: "A survival thriller about a group stranded in the Sahara Desert.",
			Genre:       "Thriller",
			ReleaseYear: 2025,
			Director:    "Ahmed Hassan",
			ImageURL:    "https://image.tmdb.org/t/p/w500/9BBTo63ANSmhC4e6r62OJFuK2GL.jpg",
		},
		{
			MovieID:     "movie_007",
			Title:       "Midnight Racing",
			Description: "Underground street racing meets high-stakes heist in this adrenaline rush.",
			Genre:       "Action",
			ReleaseYear: 2025,
			Director:    "Lucas Knight",
			ImageURL:    "https://image.tmdb.org/t/p/w500/sv1xJUazXeYqALzczSZ3O6nkH75.jpg",
		},
		{
			MovieID:     "movie_008",
			Title:       "The Forgotten Island",
			Description: "Archaeologists discover a mysterious civilization on a remote island.",
			Genre:       "Adventure",
			ReleaseYear: 2024,
			Director:    "Isabella Santos",
			ImageURL:    "https://image.tmdb.org/t/p/w500/yDHYTfA3R0jFYba16jBB1ef8oIt.jpg",
		},
	}
	for i := range seed {
		seed[i].Active = true
		seed[i].CreatedAt = now
		seed[i].LastUpdated = now
	}
	return seed
}
