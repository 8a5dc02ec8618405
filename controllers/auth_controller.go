package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	config "github.com/ranieriiuri/eclesial-arrecadacoes/config"
	models "github.com/ranieriiuri/eclesial-arrecadacoes/models"
	utils "github.com/ranieriiuri/eclesial-arrecadacoes/utils"
)

const bcryptCost = 12

// ---------------- REGISTER ----------------
func Register(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.RegistroRequest
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		col := cfg.Collection("users")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		count, err := col.CountDocuments(ctx, bson.M{"email": input.Email})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not check email"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"message": "e-mail já cadastrado"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(input.Senha), bcryptCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not hash password"})
			return
		}

		now := time.Now()
		user := models.User{
			ID:           primitive.NewObjectID(),
			Nome:         input.Nome,
			Email:        input.Email,
			SenhaHash:    string(hash),
			CPF:          input.CPF,
			Cargo:        input.Cargo,
			Endereco:     input.Endereco,
			Igreja:       input.Igreja,
			CriadoEm:     now,
			AtualizadoEm: now,
		}

		if _, err := col.InsertOne(ctx, user); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not create user"})
			return
		}

		token, err := utils.GenerateToken(cfg.JWTSecret, user.ID.Hex(), user.Email, user.Cargo, cfg.JWTTTL)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not generate token"})
			return
		}

		// Best effort; registration never fails because of e-mail.
		go func(to, nome string) {
			if err := utils.SendWelcomeEmail(to, nome); err != nil {
				log.Printf("welcome email to %s failed: %v", to, err)
			}
		}(user.Email, user.Nome)

		c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
	}
}

// ---------------- LOGIN ----------------
func Login(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email string `json:"email" binding:"required"`
			Senha string `json:"senha" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var user models.User
		err := cfg.Collection("users").FindOne(ctx, bson.M{"email": input.Email}).Decode(&user)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "credenciais inválidas"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.SenhaHash), []byte(input.Senha)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "credenciais inválidas"})
			return
		}

		token, err := utils.GenerateToken(cfg.JWTSecret, user.ID.Hex(), user.Email, user.Cargo, cfg.JWTTTL)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not generate token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
	}
}

// ---------------- ME ----------------
// Me serves both GET /auth/me and GET /users/me/data.
func Me(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := primitive.ObjectIDFromHex(c.GetString("user_id"))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid user id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := cfg.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
			return
		}

		c.JSON(http.StatusOK, user)
	}
}
