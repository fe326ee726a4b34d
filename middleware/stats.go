package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jayozer/SeoTagInspector/logging"
)

// AnalysisTarget is the context key under which handlers store the URL they analyzed
const AnalysisTarget = "analysis_target"

// AnalysisFailed is the context key under which handlers flag a failed analysis
const AnalysisFailed = "analysis_failed"

// saveEvery persists the statistics every n analyses
const saveEvery = 100

// Stats logs each request and tracks visitors and analyses.
// A request counts as an analysis when the handler set AnalysisTarget.
func Stats(stats *logging.Statistics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		ip := c.ClientIP()
		stats.TrackVisitor(ip)

		c.Next()

		elapsed := time.Since(start)
		entry := logging.Log.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"client":  ip,
			"latency": elapsed.String(),
		})

		target := c.GetString(AnalysisTarget)
		if target == "" {
			entry.Debug("Request handled")
			return
		}

		stats.TrackAnalysis(target, float64(elapsed.Milliseconds()), c.GetBool(AnalysisFailed))
		entry.WithField("target", target).Info("Analysis request handled")

		if stats.Requests()%saveEvery == 0 {
			go func() {
				if err := stats.Save(); err != nil {
					logging.Log.WithError(err).Warn("Failed to save statistics")
				}
			}()
		}
	}
}
