package scorehttp

import (
	"errors"
	"net/http"

	"altscore/internal/model"
	"altscore/internal/pipeline"
	"altscore/internal/types"

	"github.com/gin-gonic/gin"
)

// MaxBatchSize 单次批量请求的借款人上限。集合大小是调用方约束，
// 在 transport 层执行，打分核心本身不设限。
const MaxBatchSize = 50

// HistorySink 出分后的异步落库钩子，由外围服务实现；为 nil 时不落库。
type HistorySink interface {
	Record(profile types.Profile, req any, res *types.ScoreResult)
	RecentRecords(limit int) (any, error)
}

// Router 暴露打分相关接口。
type Router struct {
	Pipeline *pipeline.Pipeline
	History  HistorySink
}

// NewRouter 构造打分 HTTP router。
func NewRouter(p *pipeline.Pipeline, history HistorySink) *Router {
	return &Router{Pipeline: p, History: history}
}

// Register 将打分路由挂载到给定分组下。
func (r *Router) Register(group *gin.RouterGroup) {
	if group == nil {
		return
	}
	group.POST("/score", r.handleScore)
	group.POST("/score/batch", r.handleScoreBatch)
	group.POST("/predict", r.handlePredict)
	if r.History != nil {
		group.GET("/history", r.handleHistory)
	}
}

func (r *Router) handleScore(c *gin.Context) {
	var req ScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	in, err := req.ToBorrower()
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	res, err := r.Pipeline.Score(in)
	if err != nil {
		writeScoreError(c, err)
		return
	}
	if r.History != nil {
		r.History.Record(in.Profile, &req, res)
	}
	c.JSON(http.StatusOK, res)
}

func (r *Router) handleScoreBatch(c *gin.Context) {
	var req BatchScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if len(req.Borrowers) == 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "borrowers cannot be empty"})
		return
	}
	if len(req.Borrowers) > MaxBatchSize {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "batch size exceeds limit",
			"limit": MaxBatchSize,
		})
		return
	}
	ins := make([]*types.BorrowerInput, len(req.Borrowers))
	for i := range req.Borrowers {
		in, err := req.Borrowers[i].ToBorrower()
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "index": i})
			return
		}
		ins[i] = in
	}
	results, err := r.Pipeline.ScoreBatch(c.Request.Context(), ins)
	if err != nil {
		writeScoreError(c, err)
		return
	}
	if r.History != nil {
		for i, res := range results {
			r.History.Record(ins[i].Profile, &req.Borrowers[i], res)
		}
	}
	c.JSON(http.StatusOK, BatchScoreResponse{Results: results, Count: len(results)})
}

// handlePredict 遗留接口：预展开的 f_* 特征列直接进模型。
func (r *Router) handlePredict(c *gin.Context) {
	var req PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	res, err := r.Pipeline.ScoreColumns(req)
	if err != nil {
		writeScoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (r *Router) handleHistory(c *gin.Context) {
	limit := 100
	records, err := r.History.RecentRecords(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}

func writeScoreError(c *gin.Context, err error) {
	var verr *types.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": verr.Error()})
		return
	}
	var cerr *model.ConfigError
	if errors.As(err, &cerr) {
		// 模型制品不兼容时所有打分请求都硬失败，直到制品被纠正。
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": cerr.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
