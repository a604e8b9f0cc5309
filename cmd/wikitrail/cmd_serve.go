// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/AleutianAI/WikiTrail/services/pathfinder"
)

// exploreRequest is the body of POST /api/v1/explore.
type exploreRequest struct {
	Start         string `json:"start" binding:"required"`
	Target        string `json:"target" binding:"required"`
	MaxIterations int    `json:"max_iterations"`
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	client, err := newOracleClient(context.Background())
	if err != nil {
		return err
	}

	port := servePort
	if envPort := os.Getenv("WIKITRAIL_PORT"); envPort != "" {
		port = envPort
	}

	router := gin.Default()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.POST("/api/v1/explore", func(c *gin.Context) {
		var req exploreRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		iterations := maxIterations
		if req.MaxIterations > 0 {
			iterations = req.MaxIterations
		}

		// Fresh explorer per request: the edge cache is run-scoped.
		explorer := newExplorer(client, logger, iterations)
		result, err := explorer.Explore(c.Request.Context(), req.Start, req.Target)
		if err != nil {
			status := http.StatusBadGateway
			if errors.Is(err, pathfinder.ErrInvalidInput) {
				status = http.StatusBadRequest
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"run_id":     result.RunID,
			"outcome":    result.Outcome.String(),
			"path":       result.Path,
			"iterations": result.Iterations,
			"stalls":     result.Stalls,
			"fallbacks":  result.Fallbacks,
		})
	})

	logger.Info("starting wikitrail API", "port", port)
	return router.Run(":" + port)
}
