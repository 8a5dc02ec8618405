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

// ---------------- UPDATE PROFILE ----------------
func UpdateMe(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := primitive.ObjectIDFromHex(c.GetString("user_id"))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid user id"})
			return
		}

		var input struct {
			Nome     string           `json:"nome"`
			Cargo    string           `json:"cargo"`
			Endereco *models.Endereco `json:"endereco"`
			Igreja   *models.Igreja   `json:"igreja"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		update := bson.M{"atualizado_em": time.Now()}
		if input.Nome != "" {
			update["nome"] = input.Nome
		}
		if input.Cargo != "" {
			update["cargo"] = input.Cargo
		}
		if input.Endereco != nil {
			update["endereco"] = input.Endereco
		}
		if input.Igreja != nil {
			update["igreja"] = input.Igreja
		}

		if len(update) == 1 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "no fields to update"})
			return
		}

		col := cfg.Collection("users")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		res, err := col.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": update})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not update profile"})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
			return
		}

		var updated models.User
		if err := col.FindOne(ctx, bson.M{"_id": userID}).Decode(&updated); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to retrieve updated user"})
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

// ---------------- PROFILE PHOTO ----------------
// UploadPhoto replaces the profile photo. Multipart field name is "foto".
func UploadPhoto(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := primitive.ObjectIDFromHex(c.GetString("user_id"))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid user id"})
			return
		}

		fileHeader, err := c.FormFile("foto")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "campo 'foto' é obrigatório"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to open file"})
			return
		}
		defer file.Close()

		url, err := utils.UploadFotoPerfil(file, fileHeader)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "photo upload failed", "details": err.Error()})
			return
		}

		col := cfg.Collection("users")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var existing models.User
		if err := col.FindOne(ctx, bson.M{"_id": userID}).Decode(&existing); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
			return
		}

		if _, err := col.UpdateOne(ctx, bson.M{"_id": userID},
			bson.M{"$set": bson.M{"foto_perfil": url, "atualizado_em": time.Now()}}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not update photo"})
			return
		}

		if existing.FotoPerfil != "" {
			if err := utils.DeleteFromCloudinary(existing.FotoPerfil); err != nil {
				log.Printf("failed to delete old profile photo: %v", err)
			}
		}

		existing.FotoPerfil = url
		c.JSON(http.StatusOK, existing)
	}
}

// ---------------- CHANGE PASSWORD ----------------
func ChangePassword(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := primitive.ObjectIDFromHex(c.GetString("user_id"))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid user id"})
			return
		}

		var input struct {
			SenhaAtual string `json:"senhaAtual" binding:"required"`
			NovaSenha  string `json:"novaSenha" binding:"required,min=6"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		col := cfg.Collection("users")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := col.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.SenhaHash), []byte(input.SenhaAtual)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "senha atual incorreta"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(input.NovaSenha), bcryptCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not hash password"})
			return
		}

		if _, err := col.UpdateOne(ctx, bson.M{"_id": userID},
			bson.M{"$set": bson.M{"senha_hash": string(hash), "atualizado_em": time.Now()}}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not update password"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "senha alterada com sucesso"})
	}
}
