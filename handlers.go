package main

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"fintrack/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// App holds the dependencies shared by all handlers. The DB handle is
// injected here and scoped to the request context in reqDB; handlers never
// touch package-level state.
type App struct {
	db           *gorm.DB
	secret       []byte
	secureCookie bool
}

func NewApp(db *gorm.DB, secret []byte, secureCookie bool) *App {
	return &App{db: db, secret: secret, secureCookie: secureCookie}
}

// reqDB returns the persistence handle scoped to this request.
func (a *App) reqDB(c *gin.Context) *gorm.DB {
	return a.db.WithContext(c.Request.Context())
}

func (a *App) setupRoutes(r *gin.Engine) {
	r.GET("/signup", a.signupForm)
	r.POST("/signup", a.signup)
	r.GET("/login", a.loginForm)
	r.POST("/login", a.login)

	authGroup := r.Group("")
	authGroup.Use(a.requireLogin())
	authGroup.GET("/", a.home)
	authGroup.GET("/logout", a.logout)
	authGroup.GET("/transactions", a.listTransactions)
	authGroup.POST("/transactions", a.addTransaction)
	authGroup.GET("/budgets", a.listBudgets)
	authGroup.POST("/budgets", a.createBudget)
	authGroup.GET("/budget-status", a.budgetStatus)
	authGroup.GET("/predict-alerts", a.predictAlerts)
}

func (a *App) home(c *gin.Context) {
	user := currentUser(c)
	c.HTML(http.StatusOK, "index.html", gin.H{"Username": user.Username})
}

func (a *App) signupForm(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.html", gin.H{})
}

func (a *App) signup(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")
	if username == "" || password == "" {
		c.HTML(http.StatusOK, "signup.html", gin.H{"Error": "Username and password are required"})
		return
	}
	if _, err := RegisterUser(a.reqDB(c), username, password); err != nil {
		if errors.Is(err, ErrDuplicateUsername) {
			c.HTML(http.StatusOK, "signup.html", gin.H{"Error": "Username already exists"})
			return
		}
		log.Printf("signup failed: %v", err)
		c.HTML(http.StatusOK, "signup.html", gin.H{"Error": "Could not create account. Please try again."})
		return
	}
	c.Redirect(http.StatusFound, "/login?created=1")
}

func (a *App) loginForm(c *gin.Context) {
	// already logged in
	if raw, err := c.Cookie(sessionCookieName); err == nil && raw != "" {
		if _, err := a.parseSessionToken(raw); err == nil {
			c.Redirect(http.StatusFound, "/")
			return
		}
	}
	data := gin.H{}
	if c.Query("created") != "" {
		data["Notice"] = "Account created!"
	}
	c.HTML(http.StatusOK, "login.html", data)
}

func (a *App) login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	user, err := Authenticate(a.reqDB(c), username, password)
	if err != nil {
		c.HTML(http.StatusOK, "login.html", gin.H{"Error": "Login unsuccessful. Please check username and password"})
		return
	}
	token, err := a.issueSessionToken(user.ID, time.Now())
	if err != nil {
		log.Printf("failed to sign session token: %v", err)
		c.HTML(http.StatusOK, "login.html", gin.H{"Error": "An error occurred. Please try again."})
		return
	}
	a.setSessionCookie(c, token)
	c.Redirect(http.StatusFound, "/")
}

func (a *App) logout(c *gin.Context) {
	a.clearSessionCookie(c)
	c.Redirect(http.StatusFound, "/login")
}

// listTransactions returns the user's full history, newest date first.
func (a *App) listTransactions(c *gin.Context) {
	user := currentUser(c)
	var txs []models.Transaction
	if err := a.reqDB(c).Where("user_id = ?", user.ID).Order("date DESC, id").Find(&txs).Error; err != nil {
		log.Printf("list transactions failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "query failed"})
		return
	}
	out := make([]gin.H, 0, len(txs))
	for _, t := range txs {
		out = append(out, gin.H{
			"id":       t.ID,
			"type":     t.Type,
			"amount":   t.Amount,
			"category": t.Category,
			"date":     t.Date.Format(dateLayout),
		})
	}
	c.JSON(http.StatusOK, out)
}

// addTransaction appends one row to the ledger. All four fields are
// required; type is constrained to income/expense and the date must be a
// plain YYYY-MM-DD calendar date.
func (a *App) addTransaction(c *gin.Context) {
	user := currentUser(c)
	var req struct {
		Type     string   `json:"type" binding:"required"`
		Amount   *float64 `json:"amount" binding:"required"`
		Category string   `json:"category" binding:"required"`
		Date     string   `json:"date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required fields"})
		return
	}
	if req.Type != models.TypeIncome && req.Type != models.TypeExpense {
		c.JSON(http.StatusBadRequest, gin.H{"message": "type must be income or expense"})
		return
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "date must be YYYY-MM-DD"})
		return
	}
	row := models.Transaction{
		UserID:   user.ID,
		Type:     req.Type,
		Amount:   *req.Amount,
		Category: req.Category,
		Date:     date,
	}
	err = a.reqDB(c).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&row).Error
	})
	if err != nil {
		log.Printf("add transaction failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "An error occurred while adding the transaction"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Transaction added successfully"})
}

func (a *App) listBudgets(c *gin.Context) {
	user := currentUser(c)
	var budgets []models.Budget
	if err := a.reqDB(c).Where("user_id = ?", user.ID).Order("id").Find(&budgets).Error; err != nil {
		log.Printf("list budgets failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "query failed"})
		return
	}
	out := make([]gin.H, 0, len(budgets))
	for _, b := range budgets {
		out = append(out, gin.H{
			"id":           b.ID,
			"category":     b.Category,
			"limit_amount": b.LimitAmount,
		})
	}
	c.JSON(http.StatusOK, out)
}

// createBudget ties a new limit row to the current user. Categories are
// not unique per user.
func (a *App) createBudget(c *gin.Context) {
	user := currentUser(c)
	var req struct {
		Category    string   `json:"category" binding:"required"`
		LimitAmount *float64 `json:"limit_amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required fields"})
		return
	}
	b := models.Budget{UserID: user.ID, Category: req.Category, LimitAmount: *req.LimitAmount}
	if err := a.reqDB(c).Create(&b).Error; err != nil {
		log.Printf("create budget failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "An error occurred while creating the budget"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": b.ID, "message": "Budget created successfully"})
}

func (a *App) budgetStatus(c *gin.Context) {
	user := currentUser(c)
	results, err := BudgetStatus(a.reqDB(c), user.ID)
	if err != nil {
		log.Printf("budget status failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "query failed"})
		return
	}
	c.JSON(http.StatusOK, results)
}

func (a *App) predictAlerts(c *gin.Context) {
	user := currentUser(c)
	alert, err := PredictAlert(a.reqDB(c), user.ID, time.Now())
	if err != nil {
		log.Printf("predict alerts failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "query failed"})
		return
	}
	c.JSON(http.StatusOK, alert)
}
