// TeApoio Engage - Content Recommendations and Interaction Analytics
// Copyright 2026 TeApoio
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/teapoio/engage

package models

import (
	"time"

	"github.com/lib/pq"
)

// Author carries the content author fields rendered on recommendation cards.
// The canonical user record lives in the main platform backend; Engage reads
// the denormalized columns only.
type Author struct {
	ID        string `gorm:"size:36" json:"id"`
	Name      string `gorm:"size:120" json:"name"`
	Avatar    string `gorm:"size:512" json:"avatar,omitempty"`
	Specialty string `gorm:"size:120" json:"specialty,omitempty"`
}

// Article is an editorial content item. Engage reads the columns relevant to
// candidate retrieval and card rendering; the article body is owned by the
// main backend and never loaded here.
type Article struct {
	ID        string         `gorm:"size:36;primaryKey" json:"id"`
	Title     string         `gorm:"size:255;not null" json:"title"`
	Excerpt   string         `gorm:"type:text" json:"excerpt,omitempty"`
	Image     string         `gorm:"size:512" json:"image,omitempty"`
	Category  string         `gorm:"size:80;index" json:"category,omitempty"`
	ReadTime  int            `json:"readTime,omitempty"`
	Tags      pq.StringArray `gorm:"type:text[]" json:"tags"`
	Published bool           `gorm:"not null;default:false;index" json:"published"`
	Author    Author         `gorm:"embedded;embeddedPrefix:author_" json:"author"`
	CreatedAt time.Time      `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// TableName maps Article to the articles table.
func (Article) TableName() string { return "articles" }

// Activity is a hands-on activity item (sensory games, routines, exercises).
type Activity struct {
	ID          string         `gorm:"size:36;primaryKey" json:"id"`
	Title       string         `gorm:"size:255;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description,omitempty"`
	Image       string         `gorm:"size:512" json:"image,omitempty"`
	Category    string         `gorm:"size:80;index" json:"category,omitempty"`
	Difficulty  string         `gorm:"size:40" json:"difficulty,omitempty"`
	AgeRange    string         `gorm:"size:40" json:"ageRange,omitempty"`
	Duration    int            `json:"duration,omitempty"`
	Tags        pq.StringArray `gorm:"type:text[]" json:"tags"`
	Published   bool           `gorm:"not null;default:false;index" json:"published"`
	Author      Author         `gorm:"embedded;embeddedPrefix:author_" json:"author"`
	CreatedAt   time.Time      `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// TableName maps Activity to the activities table.
func (Activity) TableName() string { return "activities" }
