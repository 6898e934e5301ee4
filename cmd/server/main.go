package main

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/ekurtovic/boardsim/internal/csvio"
	"github.com/ekurtovic/boardsim/internal/simulate"
	"github.com/ekurtovic/boardsim/pkg/model"
)

const reportDir = "db/generated/"

// scenarioRequest carries the tunables a client may override; zero fields
// keep their defaults.
type scenarioRequest struct {
	Rows        int   `json:"rows"`
	SeatsPerRow int   `json:"seatsPerRow"`
	Passengers  int   `json:"passengers"`
	Seeds       int   `json:"seeds"`
	SeedBase    int64 `json:"seedBase"`
}

func main() {
	// .env is optional; real env wins either way
	_ = godotenv.Load()
	port := os.Getenv("BOARDSIM_PORT")
	if port == "" {
		port = "3001"
	}

	r := gin.Default()

	r.GET("/reports", func(ctx *gin.Context) {
		files, err := os.ReadDir(reportDir)
		if err != nil {
			ctx.JSON(http.StatusOK, gin.H{"reportIds": []string{}})
			return
		}
		var allIDs []string = []string{}
		for _, file := range files {
			if file.IsDir() {
				continue
			}
			id, ok := strings.CutSuffix(file.Name(), "-comparison.csv")
			if ok {
				allIDs = append(allIDs, id)
			}
		}
		ctx.JSON(http.StatusOK, gin.H{"reportIds": allIDs})
	})

	r.GET("/reports/:id", func(ctx *gin.Context) {
		id := ctx.Param("id")
		content, err := os.ReadFile(reportDir + id + "-comparison.csv")
		if err != nil {
			ctx.Status(http.StatusNotFound)
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"data": string(content)})
	})

	r.POST("/simulate", func(ctx *gin.Context) {
		var req scenarioRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.String(http.StatusBadRequest, err.Error())
			return
		}

		cfg := configFromRequest(req)
		runner, err := simulate.NewRunner(cfg)
		if err != nil {
			var cerr *model.ConfigError
			if errors.As(err, &cerr) {
				ctx.String(http.StatusBadRequest, err.Error())
				return
			}
			ctx.String(http.StatusInternalServerError, err.Error())
			return
		}

		rep, err := runner.RunScenario()
		if err != nil {
			ctx.String(http.StatusInternalServerError, err.Error())
			return
		}

		id := uuid.NewString()
		if err := os.MkdirAll(reportDir, 0755); err == nil {
			_ = csvio.ExportComparison(rep.Comparison, reportDir+id+"-comparison.csv")
		}

		ctx.JSON(http.StatusOK, gin.H{
			"id":         id,
			"comparison": rep.Comparison,
			"calibration": gin.H{
				"k":        rep.Fit.Params.K,
				"alpha":    rep.Fit.Params.Alpha,
				"residual": rep.Fit.Residual,
			},
			"disembark": rep.DisembarkMeans,
		})
	})

	r.Run(":" + port)
}

func configFromRequest(req scenarioRequest) *simulate.Configuration {
	cfg := simulate.NewDefaultConfiguration()
	if req.Rows != 0 {
		cfg.Rows = req.Rows
	}
	if req.SeatsPerRow != 0 {
		cfg.SeatsPerRow = req.SeatsPerRow
	}
	if req.Passengers != 0 {
		cfg.Passengers = req.Passengers
	}
	if req.Seeds != 0 {
		cfg.Seeds = req.Seeds
	}
	if req.SeedBase != 0 {
		cfg.SeedBase = req.SeedBase
	}
	return cfg
}
