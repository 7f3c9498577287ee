package entities

type ValidatedBlog struct {
	*Blog
}

func NewValidatedBlog(blog *Blog) (*ValidatedBlog, error) {
	if err := blog.validate(); err != nil {
		return nil, err
	}

	return &ValidatedBlog{Blog: blog}, nil
}

func (vb *ValidatedBlog) GetBlog() *Blog {
	return vb.Blog
}

func (vb *ValidatedBlog) UpdateDetails(title, author, rawURL string, likes *int) error {
	return vb.Blog.UpdateDetails(title, author, rawURL, likes)
}
