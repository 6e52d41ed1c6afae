package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Server struct {
	catalog *Catalog
}

func NewServer(catalog *Catalog) *Server {
	return &Server{catalog: catalog}
}

func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	r.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"message": "Hello from the Restaurant API!"})
	})

	r.GET("/restaurants", func(ctx *gin.Context) {
		restaurants, err := s.catalog.List()
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		ctx.JSON(http.StatusOK, restaurants)
	})

	r.GET("/restaurants/:id", func(ctx *gin.Context) {
		id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid restaurant id"})
			return
		}

		restaurant, err := s.catalog.Get(id)
		switch {
		case errors.Is(err, ErrRestaurantNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case err != nil:
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		default:
			ctx.JSON(http.StatusOK, restaurant)
		}
	})

	return r
}
